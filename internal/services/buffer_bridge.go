package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/internal/infrastructure/buffer"
	"github.com/fastygo/spideplan/usecase"
)

// BufferBridge serializes planner entities into buffer items.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return b.buffer(ctx, buffer.EntityTask, operation, task.ID, task)
}

func (b *BufferBridge) BufferSleep(ctx context.Context, operation string, entry *domain.SleepEntry) error {
	if entry == nil {
		return domain.ErrInvalidPayload
	}
	return b.buffer(ctx, buffer.EntitySleep, operation, entry.ID, entry)
}

func (b *BufferBridge) BufferNote(ctx context.Context, operation string, note *domain.Note) error {
	if note == nil {
		return domain.ErrInvalidPayload
	}
	return b.buffer(ctx, buffer.EntityNote, operation, note.ID, note)
}

func (b *BufferBridge) buffer(ctx context.Context, entity, operation, id string, v interface{}) error {
	if b == nil || b.processor == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.processor.BufferOperation(ctx, buffer.Item{
		EntityID:  id,
		Entity:    entity,
		Operation: operation,
		Data:      payload,
	})
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
