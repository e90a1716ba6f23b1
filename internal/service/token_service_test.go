package service

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
)

func TestNewAccessTokenCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{10}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := newAccessTokenCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestGenerateAccessToken(t *testing.T) {
	actor := stock.Actor{ID: uuid.New(), Name: "Admin"}

	t.Run("retries on collision", func(t *testing.T) {
		repo := newFakeTokenRepo(nil)
		repo.createErr = []error{repository.ErrDuplicate, nil}
		svc := NewAccessTokenService(repo, zaptest.NewLogger(t)).(*accessTokenService)
		codes := []string{"AAAAAAAAAA", "BBBBBBBBBB"}
		svc.newToken = func() string {
			c := codes[0]
			codes = codes[1:]
			return c
		}

		token, err := svc.Generate(actor)
		require.NoError(t, err)
		assert.Equal(t, "BBBBBBBBBB", token.Token)
		assert.Equal(t, actor.ID.String(), token.CreatedBy)
		assert.False(t, token.IsUsed)
	})

	t.Run("gives up after three collisions", func(t *testing.T) {
		repo := newFakeTokenRepo(nil)
		repo.createErr = []error{repository.ErrDuplicate, repository.ErrDuplicate, repository.ErrDuplicate}
		svc := NewAccessTokenService(repo, zaptest.NewLogger(t))

		_, err := svc.Generate(actor)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("other errors are returned at once", func(t *testing.T) {
		boom := errors.New("boom")
		repo := newFakeTokenRepo(nil)
		repo.createErr = []error{fmt.Errorf("insert: %w", boom)}
		svc := NewAccessTokenService(repo, zaptest.NewLogger(t))

		_, err := svc.Generate(actor)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, repo.tokens)
	})
}
