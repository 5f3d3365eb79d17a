package repository

import (
	"context"

	"github.com/fastygo/spideplan/domain"
)

// NoteScope selects notes by archive state.
type NoteScope string

const (
	NoteScopeActive   NoteScope = "active"
	NoteScopeArchived NoteScope = "archived"
	NoteScopeAll      NoteScope = "all"
)

type NoteFilter struct {
	Scope NoteScope
	// Query matches content among active notes only.
	Query  string
	Limit  int
	Offset int
}

type NoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, filter NoteFilter) ([]domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
	DeleteArchived(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}
