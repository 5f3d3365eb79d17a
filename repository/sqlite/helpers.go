package sqlite

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const maxListLimit = 500

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		if limit > maxListLimit {
			limit = maxListLimit
		}
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

// translate maps gorm's not-found to notFound and wraps anything else.
func translate(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
