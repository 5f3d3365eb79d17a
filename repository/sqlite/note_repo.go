package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository returns a SQLite-backed implementation of NoteRepository.
func NewNoteRepository(db *gorm.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var row noteRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find note", domain.ErrNoteNotFound)
	}
	note := row.toDomain()
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	q := r.db.WithContext(ctx).Model(&noteRow{})

	scope := filter.Scope
	if query := strings.TrimSpace(filter.Query); query != "" {
		scope = repository.NoteScopeActive
		q = q.Where("content LIKE ?", "%"+query+"%")
	}
	switch scope {
	case repository.NoteScopeArchived:
		q = q.Where("archived = ?", true)
	case repository.NoteScopeAll:
	default:
		q = q.Where("archived = ?", false)
	}

	var rows []noteRow
	if err := paginate(q.Order("updated_at DESC"), filter.Limit, filter.Offset).Find(&rows).Error; err != nil {
		return nil, translate(err, "list notes", nil)
	}

	notes := make([]domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toDomain())
	}
	return notes, nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, domain.ErrInvalidPayload
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.Touch(time.Now())
	}
	row := newNoteRow(note)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, "create note", nil)
	}
	return note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	if note == nil {
		return domain.ErrInvalidPayload
	}
	if note.UpdatedAt.IsZero() {
		note.Touch(time.Now())
	}
	row := newNoteRow(note)
	result := r.db.WithContext(ctx).Model(&noteRow{}).
		Where("id = ?", note.ID).
		Select("content", "tags", "archived", "updated_at").
		Updates(&row)
	if err := result.Error; err != nil {
		return translate(err, "update note", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&noteRow{}, "id = ?", id)
	if err := result.Error; err != nil {
		return translate(err, "delete note", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) DeleteArchived(ctx context.Context) (int, error) {
	result := r.db.WithContext(ctx).Where("archived = ?", true).Delete(&noteRow{})
	if err := result.Error; err != nil {
		return 0, translate(err, "delete archived notes", nil)
	}
	return int(result.RowsAffected), nil
}

func (r *noteRepository) CountActive(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&noteRow{}).Where("archived = ?", false).Count(&count).Error; err != nil {
		return 0, translate(err, "count notes", nil)
	}
	return int(count), nil
}
