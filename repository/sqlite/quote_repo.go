package sqlite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository returns a SQLite-backed implementation of QuoteRepository.
func NewQuoteRepository(db *gorm.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var row quoteRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find quote", domain.ErrQuoteNotFound)
	}
	quote := row.toDomain()
	return &quote, nil
}

func (r *quoteRepository) List(ctx context.Context, filter repository.QuoteFilter) ([]domain.Quote, error) {
	q := r.db.WithContext(ctx).Model(&quoteRow{})
	if filter.Category != "" {
		q = q.Where("category = ?", string(filter.Category))
	}
	if filter.FavoritesOnly {
		q = q.Where("favorite = ?", true)
	}

	var rows []quoteRow
	if err := q.Order("author ASC").Order("text ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list quotes", nil)
	}

	quotes := make([]domain.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, row.toDomain())
	}
	return quotes, nil
}

func (r *quoteRepository) Random(ctx context.Context, category domain.QuoteCategory) (*domain.Quote, error) {
	q := r.db.WithContext(ctx).Model(&quoteRow{})
	if category != "" {
		q = q.Where("category = ?", string(category))
	}

	var row quoteRow
	if err := q.Order("RANDOM()").Take(&row).Error; err != nil {
		return nil, translate(err, "pick random quote", domain.ErrQuoteNotFound)
	}
	quote := row.toDomain()
	return &quote, nil
}

func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	if quote == nil {
		return nil, domain.ErrInvalidPayload
	}
	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	row := newQuoteRow(quote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, "create quote", nil)
	}
	return quote, nil
}

func (r *quoteRepository) CreateBatch(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	rows := make([]quoteRow, 0, len(quotes))
	for i := range quotes {
		if quotes[i].ID == "" {
			quotes[i].ID = uuid.NewString()
		}
		rows = append(rows, newQuoteRow(&quotes[i]))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return translate(err, "create quotes", nil)
	}
	return nil
}

func (r *quoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	if quote == nil {
		return domain.ErrInvalidPayload
	}
	row := newQuoteRow(quote)
	result := r.db.WithContext(ctx).Model(&quoteRow{}).
		Where("id = ?", quote.ID).
		Select("text", "author", "source", "category", "favorite").
		Updates(&row)
	if err := result.Error; err != nil {
		return translate(err, "update quote", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	result := r.db.WithContext(ctx).Model(&quoteRow{}).Where("id = ?", id).Update("favorite", favorite)
	if err := result.Error; err != nil {
		return translate(err, "update favorite", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&quoteRow{}, "id = ?", id)
	if err := result.Error; err != nil {
		return translate(err, "delete quote", nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&quoteRow{}).Error
	return translate(err, "delete quotes", nil)
}

func (r *quoteRepository) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&quoteRow{}).Count(&count).Error; err != nil {
		return 0, translate(err, "count quotes", nil)
	}
	return int(count), nil
}
