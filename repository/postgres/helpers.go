package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fastygo/spideplan/repository"
)

const maxListLimit = 500

func marshalTags(tags []string) []byte {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalTags(raw []byte) ([]string, error) {
	tags := []string{}
	if len(raw) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode note tags: %w", err)
	}
	return tags, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC()
}

func rangeArgs(rng *repository.TimeRange) (interface{}, interface{}) {
	if rng == nil {
		return nil, nil
	}
	return rng.From.UTC(), rng.To.UTC()
}

// limitArg maps "no limit" to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

type scanner interface {
	Scan(dest ...interface{}) error
}
