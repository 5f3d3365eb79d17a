package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/spideplan/domain"
	"github.com/fastygo/spideplan/repository"
)

func TestQuoteRepository_BatchRandomAndFilters(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))

	_, err := repo.Random(bg, "")
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, repo.CreateBatch(bg, []domain.Quote{
		{Text: "With great power comes great responsibility.", Author: "Uncle Ben", Category: domain.QuoteResponsibility},
		{Text: "Anyone can wear the mask.", Author: "Miles Morales", Category: domain.QuoteCourage},
		{Text: "Keep going.", Author: "Aunt May", Category: domain.QuoteMotivation},
	}))

	count, err := repo.Count(bg)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	picked, err := repo.Random(bg, domain.QuoteCourage)
	require.NoError(t, err)
	assert.Equal(t, "Miles Morales", picked.Author)

	_, err = repo.Random(bg, domain.QuoteWisdom)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, repo.SetFavorite(bg, picked.ID, true))
	favs, err := repo.List(bg, repository.QuoteFilter{FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, picked.ID, favs[0].ID)

	assert.True(t, domain.IsNotFound(repo.SetFavorite(bg, "missing", true)))

	byCategory, err := repo.List(bg, repository.QuoteFilter{Category: domain.QuoteResponsibility})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Uncle Ben", byCategory[0].Author)
}

func TestQuoteRepository_CRUD(t *testing.T) {
	repo := NewQuoteRepository(setupTestDB(t))

	quote, err := repo.Create(bg, &domain.Quote{Text: "Be brave.", Author: "Gwen", Category: domain.QuoteCourage})
	require.NoError(t, err)

	quote.Source = "Across the Spider-Verse"
	require.NoError(t, repo.Update(bg, quote))
	found, err := repo.GetByID(bg, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "Across the Spider-Verse", found.Source)

	require.NoError(t, repo.Delete(bg, quote.ID))
	assert.True(t, domain.IsNotFound(repo.Delete(bg, quote.ID)))

	_, err = repo.Create(bg, &domain.Quote{Text: "a", Author: "b", Category: domain.QuoteWisdom})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteAll(bg))
	count, err := repo.Count(bg)
	require.NoError(t, err)
	assert.Zero(t, count)
}
