package buffer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entities the planner can replay.
const (
	EntityTask  = "task"
	EntitySleep = "sleep"
	EntityNote  = "note"

	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Keys sort by priority, then by enqueue time, so items of equal priority
// replay in the order they were written.
const defaultPriority = 3

// ErrFull is returned by Enqueue once MaxSize items are pending.
var ErrFull = errors.New("write buffer is full")

// Item is a planner write that could not reach the primary store.
type Item struct {
	ID        string          `json:"id"`
	EntityID  string          `json:"entity_id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = defaultPriority
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
