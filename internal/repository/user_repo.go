package repository

import (
	"time"

	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll(roleCode string) ([]model.User, error)
	FindActiveByRole(roleCode string) ([]model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(id uuid.UUID, deletedBy string) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	UpdatePrivileges(userID uuid.UUID, privileges []model.Privilege) error
	UpdateTokenVersion(userID uuid.UUID, version string) error
	UpdateLastSeen(userID uuid.UUID, at time.Time) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Role").Preload("Privileges").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Role").Preload("Privileges").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll(roleCode string) ([]model.User, error) {
	var users []model.User
	q := r.db.Preload("Role").Preload("Privileges")
	if roleCode != "" {
		q = q.Joins("JOIN roles ON roles.id = users.role_id").Where("roles.code = ?", roleCode)
	}
	if err := q.Order("users.created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindActiveByRole(roleCode string) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.code = ? AND users.is_active = ?", roleCode, true).
		Find(&users).Error
	return users, err
}

func (r *userRepo) Create(user *model.User) error {
	return translate(r.db.Omit("Privileges.*").Create(user).Error)
}

func (r *userRepo) Update(user *model.User) error {
	return translate(r.db.Omit("Privileges", "Role").Save(user).Error)
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) UpdatePrivileges(userID uuid.UUID, privileges []model.Privilege) error {
	var user model.User
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	return r.db.Model(&user).Association("Privileges").Replace(privileges)
}

func (r *userRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).Where("id = ?", id).
			Updates(map[string]interface{}{"deleted_by": deletedBy, "is_active": false, "token_version": ""})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&model.User{}, "id = ?", id).Error
	})
}

func (r *userRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("token_version", version).Error
}

func (r *userRepo) UpdateLastSeen(userID uuid.UUID, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("last_seen_at", at).Error
}
