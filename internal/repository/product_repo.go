package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows FindAll. Zero values mean "any".
type ProductFilter struct {
	Search       string
	Category     string
	LowStockOnly bool
	ActiveOnly   bool
}

type ProductRepository interface {
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Model(&model.Product{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.LowStockOnly {
		q = q.Where("quantity <= low_stock_threshold")
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update saves every column except quantity, which only the stock ledger writes.
func (r *productRepo) Update(product *model.Product) error {
	err := r.db.Model(product).
		Select("sku", "name", "category", "unit", "price", "low_stock_threshold", "is_active",
			"updated_by", "updated_by_user_id").
		Updates(product).Error
	return translate(err)
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).Where("id = ?", id).
			Updates(map[string]interface{}{"deleted_by": deletedBy, "is_active": false})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}
