package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	err := translate(dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	fk := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, translate(fk), ErrDuplicate)

	other := errors.New("connection refused")
	assert.Equal(t, other, translate(other))
	assert.NoError(t, translate(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("boom")))
}
