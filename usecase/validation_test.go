package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/spideplan/domain"
)

type sample struct {
	Name  string `validate:"required,max=5"`
	Count int    `validate:"min=1"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sample{Name: "web", Count: 2}))

	err := Validate(sample{Name: "", Count: 0})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "count must be at least 1")
}

func TestBufferable(t *testing.T) {
	assert.False(t, Bufferable(nil))
	assert.False(t, Bufferable(domain.ErrTaskNotFound))
	assert.False(t, Bufferable(domain.Invalid("nope")))
	assert.True(t, Bufferable(errors.New("database is locked")))
}
