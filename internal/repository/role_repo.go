package repository

import (
	"errors"

	"go-backoffice/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll() ([]model.Role, error)
	FindByID(id uint) (*model.Role, error)
	FindByCode(code string) (*model.Role, error)
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Privileges").Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Privileges").First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByCode(code string) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// SeedDefaults creates missing roles and attaches their default privileges.
// Privileges must be seeded first. Existing role grants are left alone.
func (r *roleRepo) SeedDefaults() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, defaultRole := range model.DefaultRoles {
			var existingRole model.Role
			err := tx.Where("code = ?", defaultRole.Code).First(&existingRole).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			role := defaultRole
			if err := tx.Create(&role).Error; err != nil {
				return err
			}

			var privileges []model.Privilege
			q := tx.Model(&model.Privilege{})
			if role.Code != model.RoleAdmin {
				q = q.Where("code IN ?", model.DefaultRolePrivileges[role.Code])
			}
			if err := q.Find(&privileges).Error; err != nil {
				return err
			}
			if err := tx.Model(&role).Association("Privileges").Replace(privileges); err != nil {
				return err
			}
		}
		return nil
	})
}
