package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/stock"
)

const accessTokenLength = 10

type AccessTokenService interface {
	Generate(actor stock.Actor) (*model.AccessToken, error)
	List() ([]model.AccessToken, error)
}

type accessTokenService struct {
	repo     repository.AccessTokenRepository
	newToken func() string
	logger   *zap.Logger
}

func NewAccessTokenService(repo repository.AccessTokenRepository, logger *zap.Logger) AccessTokenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accessTokenService{repo: repo, newToken: newAccessTokenCode, logger: logger}
}

// newAccessTokenCode takes the leading random hex digits of a v4 UUID.
func newAccessTokenCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:accessTokenLength]
}

// Generate retries a few times on the unlikely collision with an existing code.
func (s *accessTokenService) Generate(actor stock.Actor) (*model.AccessToken, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		token := &model.AccessToken{Token: s.newToken()}
		token.CreatedBy = actor.Ref()
		token.UpdatedBy = actor.Ref()

		err := s.repo.Create(token)
		if err == nil {
			s.logger.Info("access token generated",
				zap.String("token_id", token.ID.String()), zap.String("actor", actor.Ref()))
			return token, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *accessTokenService) List() ([]model.AccessToken, error) {
	return s.repo.FindAll()
}
