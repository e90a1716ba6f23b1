package repository

import (
	"errors"
	"time"

	"go-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTokenUsed is returned when redeeming a token that was already consumed.
var ErrTokenUsed = errors.New("access token already used")

type AccessTokenRepository interface {
	Create(token *model.AccessToken) error
	FindAll() ([]model.AccessToken, error)
	Redeem(code string, user *model.User) error
}

type accessTokenRepo struct {
	db *gorm.DB
}

func NewAccessTokenRepo(db *gorm.DB) AccessTokenRepository {
	return &accessTokenRepo{db}
}

func (r *accessTokenRepo) Create(token *model.AccessToken) error {
	return translate(r.db.Create(token).Error)
}

func (r *accessTokenRepo) FindAll() ([]model.AccessToken, error) {
	var tokens []model.AccessToken
	err := r.db.Order("created_at DESC").Find(&tokens).Error
	return tokens, err
}

// Redeem creates user and consumes the token in one transaction. The token
// row is locked so two redemptions of the same code cannot both succeed.
func (r *accessTokenRepo) Redeem(code string, user *model.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var token model.AccessToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&token, "token = ?", code).Error
		if err != nil {
			return err
		}
		if !token.IsValid() {
			return ErrTokenUsed
		}

		if err := tx.Omit("Privileges.*").Create(user).Error; err != nil {
			return translate(err)
		}

		now := time.Now()
		return tx.Model(&token).Updates(map[string]interface{}{
			"is_used":         true,
			"used_at":         now,
			"used_by_user_id": user.ID,
		}).Error
	})
}
