package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

const noteColumns = `id, content, tags, archived, created_at, updated_at`

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository returns a Postgres-backed implementation of NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) repository.NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

func (r *noteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	const query = `SELECT ` + noteColumns + `
	FROM notes
	WHERE ($1 = 'all' OR archived = ($1 = 'archived'))
	  AND ($2 = '' OR content ILIKE '%' || $2 || '%')
	ORDER BY updated_at DESC
	LIMIT $3 OFFSET $4
	`

	scope := filter.Scope
	search := strings.TrimSpace(filter.Query)
	if search != "" || scope == "" {
		scope = repository.NoteScopeActive
	}

	rows, err := r.pool.Query(ctx, query, string(scope), search, limitArg(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
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

	const query = `
	INSERT INTO notes (id, content, tags, archived, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query,
		note.ID,
		note.Content,
		marshalTags(note.Tags),
		note.Archived,
		note.CreatedAt.UTC(),
		note.UpdatedAt.UTC(),
	); err != nil {
		return nil, err
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

	const query = `
	UPDATE notes
	SET content = $2,
		tags = $3,
		archived = $4,
		updated_at = $5
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		note.ID,
		note.Content,
		marshalTags(note.Tags),
		note.Archived,
		note.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) DeleteArchived(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE archived`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *noteRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE NOT archived`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanNote(row scanner) (*domain.Note, error) {
	var (
		note domain.Note
		tags []byte
	)
	if err := row.Scan(&note.ID, &note.Content, &tags, &note.Archived, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	parsed, err := unmarshalTags(tags)
	if err != nil {
		return nil, fmt.Errorf("note %s: %w", note.ID, err)
	}
	note.Tags = parsed
	return &note, nil
}
