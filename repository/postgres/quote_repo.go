package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

const quoteColumns = `id, text, author, source, category, favorite`

type quoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository returns a Postgres-backed implementation of QuoteRepository.
func NewQuoteRepository(pool *pgxpool.Pool) repository.QuoteRepository {
	return &quoteRepository{pool: pool}
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	return scanQuote(row)
}

func (r *quoteRepository) List(ctx context.Context, filter repository.QuoteFilter) ([]domain.Quote, error) {
	const query = `SELECT ` + quoteColumns + `
	FROM quotes
	WHERE ($1 = '' OR category = $1)
	  AND (NOT $2 OR favorite)
	ORDER BY author ASC, text ASC
	`
	rows, err := r.pool.Query(ctx, query, string(filter.Category), filter.FavoritesOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []domain.Quote{}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}

func (r *quoteRepository) Random(ctx context.Context, category domain.QuoteCategory) (*domain.Quote, error) {
	const query = `SELECT ` + quoteColumns + `
	FROM quotes
	WHERE ($1 = '' OR category = $1)
	ORDER BY random()
	LIMIT 1
	`
	return scanQuote(r.pool.QueryRow(ctx, query, string(category)))
}

const insertQuote = `
	INSERT INTO quotes (id, text, author, source, category, favorite)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	if quote == nil {
		return nil, domain.ErrInvalidPayload
	}
	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	if _, err := r.pool.Exec(ctx, insertQuote, quoteArgs(quote)...); err != nil {
		return nil, err
	}
	return quote, nil
}

// CreateBatch inserts all quotes in one round trip and one transaction.
func (r *quoteRepository) CreateBatch(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i := range quotes {
		if quotes[i].ID == "" {
			quotes[i].ID = uuid.NewString()
		}
		batch.Queue(insertQuote, quoteArgs(&quotes[i])...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *quoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	if quote == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE quotes
	SET text = $2, author = $3, source = $4, category = $5, favorite = $6
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, quoteArgs(quote)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE quotes SET favorite = $2 WHERE id = $1`, id, favorite)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quotes`)
	return err
}

func (r *quoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func quoteArgs(q *domain.Quote) []interface{} {
	return []interface{}{q.ID, q.Text, q.Author, q.Source, string(q.Category), q.Favorite}
}

func scanQuote(row scanner) (*domain.Quote, error) {
	var (
		quote    domain.Quote
		category string
	)
	if err := row.Scan(&quote.ID, &quote.Text, &quote.Author, &quote.Source, &category, &quote.Favorite); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	quote.Category = domain.QuoteCategory(category)
	return &quote, nil
}
