package usecase

import (
	"context"
	"errors"

	"github.com/fastygo/spideplan/domain"
)

// Buffered write operations.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the write buffer so use cases stay storage-agnostic.
// A nil error means the write was accepted for later replay.
type OperationBuffer interface {
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferSleep(ctx context.Context, operation string, entry *domain.SleepEntry) error
	BufferNote(ctx context.Context, operation string, note *domain.Note) error
}

// Bufferable reports whether a failed write may be handed to the buffer.
// Domain errors (not found, invalid input) are final answers, not outages.
func Bufferable(err error) bool {
	if err == nil {
		return false
	}
	var dErr *domain.Error
	return !errors.As(err, &dErr)
}
