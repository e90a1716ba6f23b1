package repository

import (
	"go-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get() (*model.SystemSettings, error)
	Save(settings *model.SystemSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

// Get returns the settings row, inserting the defaults on first use.
func (r *settingsRepo) Get() (*model.SystemSettings, error) {
	settings := model.DefaultSettings()
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
	if err != nil {
		return nil, err
	}

	var stored model.SystemSettings
	if err := r.db.First(&stored, model.SettingsID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *settingsRepo) Save(settings *model.SystemSettings) error {
	settings.ID = model.SettingsID
	return r.db.Save(settings).Error
}
