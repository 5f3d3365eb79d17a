package note

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
	"github.com/fastygo/spideplan/usecase"
)

type Input struct {
	Content string   `json:"content" validate:"max=10000"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
}

// Query lists notes. A non-empty Search only ever looks at active notes.
type Query struct {
	Scope  repository.NoteScope
	Search string
	Limit  int
	Offset int
}

type UseCase struct {
	notes  repository.NoteRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
	clock  usecase.Clock
}

func New(notes repository.NoteRepository, buffer usecase.OperationBuffer, logger *zap.Logger, clock usecase.Clock) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		notes:  notes,
		buffer: buffer,
		logger: logger,
		clock:  clock.OrDefault(),
	}
}

func (uc *UseCase) List(ctx context.Context, q Query) ([]domain.Note, error) {
	scope := q.Scope
	switch scope {
	case "":
		scope = repository.NoteScopeActive
	case repository.NoteScopeActive, repository.NoteScopeArchived, repository.NoteScopeAll:
	default:
		return nil, domain.Invalid("scope must be one of active, archived, all")
	}
	return uc.notes.List(ctx, repository.NoteFilter{
		Scope:  scope,
		Query:  strings.TrimSpace(q.Search),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

// Search matches content among active notes.
func (uc *UseCase) Search(ctx context.Context, text string) ([]domain.Note, error) {
	return uc.List(ctx, Query{Scope: repository.NoteScopeActive, Search: text})
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Note, error) {
	return uc.notes.GetByID(ctx, id)
}

func (uc *UseCase) Create(ctx context.Context, in Input) (*domain.Note, error) {
	note := &domain.Note{ID: uuid.NewString()}
	if err := apply(note, in); err != nil {
		return nil, err
	}
	note.Touch(uc.clock.Now())

	created, err := uc.notes.Create(ctx, note)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, note, err) {
			return note, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, id string, in Input) (*domain.Note, error) {
	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(note, in); err != nil {
		return nil, err
	}
	note.Touch(uc.clock.Now())
	return uc.save(ctx, note)
}

func (uc *UseCase) Archive(ctx context.Context, id string) (*domain.Note, error) {
	return uc.setArchived(ctx, id, true)
}

func (uc *UseCase) Unarchive(ctx context.Context, id string) (*domain.Note, error) {
	return uc.setArchived(ctx, id, false)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.notes.Delete(ctx, id); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Note{ID: id}, err) {
			return nil
		}
		return err
	}
	return nil
}

// PurgeArchived removes every archived note.
func (uc *UseCase) PurgeArchived(ctx context.Context) (int, error) {
	removed, err := uc.notes.DeleteArchived(ctx)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("archived notes purged", zap.Int("count", removed))
	return removed, nil
}

func (uc *UseCase) CountActive(ctx context.Context) (int, error) {
	return uc.notes.CountActive(ctx)
}

func (uc *UseCase) setArchived(ctx context.Context, id string, archived bool) (*domain.Note, error) {
	note, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Archived = archived
	note.Touch(uc.clock.Now())
	return uc.save(ctx, note)
}

func (uc *UseCase) save(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if err := uc.notes.Update(ctx, note); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, note, err) {
			return note, nil
		}
		return nil, err
	}
	return note, nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, note *domain.Note, cause error) bool {
	if uc.buffer == nil || !usecase.Bufferable(cause) {
		return false
	}
	if err := uc.buffer.BufferNote(ctx, operation, note); err != nil {
		uc.logger.Error("failed to buffer note operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("note operation buffered",
		zap.String("operation", operation),
		zap.String("note_id", note.ID),
		zap.NamedError("cause", cause))
	return true
}

func apply(note *domain.Note, in Input) error {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Invalid("note content cannot be empty")
	}
	if err := usecase.Validate(in); err != nil {
		return err
	}
	note.Content = content
	note.Tags = normalizeTags(in.Tags)
	return nil
}

// normalizeTags trims, lowercases and de-duplicates tags, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
