package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BuyerRepository interface {
	FindAll(search string) ([]model.Buyer, error)
	FindByID(id uuid.UUID) (*model.Buyer, error)
	Create(buyer *model.Buyer) error
	Update(buyer *model.Buyer) error
	Delete(id uuid.UUID, deletedBy string) error
}

type buyerRepo struct {
	db *gorm.DB
}

func NewBuyerRepo(db *gorm.DB) BuyerRepository {
	return &buyerRepo{db}
}

// FindAll lists active buyers, optionally matching name, email or phone.
func (r *buyerRepo) FindAll(search string) ([]model.Buyer, error) {
	var buyers []model.Buyer
	q := r.db.Where("is_active = ?", true)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	err := q.Order("name ASC").Find(&buyers).Error
	return buyers, err
}

func (r *buyerRepo) FindByID(id uuid.UUID) (*model.Buyer, error) {
	var buyer model.Buyer
	if err := r.db.First(&buyer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (r *buyerRepo) Create(buyer *model.Buyer) error {
	return translate(r.db.Create(buyer).Error)
}

func (r *buyerRepo) Update(buyer *model.Buyer) error {
	return translate(r.db.Save(buyer).Error)
}

// Delete deactivates and soft-deletes the buyer. Past transactions keep their reference.
func (r *buyerRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Buyer{}).Where("id = ?", id).
			Updates(map[string]interface{}{"deleted_by": deletedBy, "is_active": false})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&model.Buyer{}, "id = ?", id).Error
	})
}
