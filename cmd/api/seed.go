package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/config"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
)

// seed creates default privileges, roles, settings and the admin user if they don't exist.
// Failures are logged; the server still starts.
func seed(db *gorm.DB, cfg config.SeedConfig, log *zap.Logger) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Warn("failed to seed privileges", zap.Error(err))
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Warn("failed to seed roles", zap.Error(err))
	}
	if _, err := repository.NewSettingsRepo(db).Get(); err != nil {
		log.Warn("failed to seed settings", zap.Error(err))
	}

	if _, err := userRepo.FindByEmail(cfg.AdminEmail); err == nil {
		return
	}
	if cfg.AdminPassword == "" {
		log.Warn("no admin account and ADMIN_PASSWORD is empty; skipping admin seed", zap.String("email", cfg.AdminEmail))
		return
	}

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		log.Warn("admin role missing", zap.Error(err))
		return
	}

	admin := &model.User{
		Email:      cfg.AdminEmail,
		FullName:   "Administrator",
		RoleID:     &adminRole.ID,
		IsActive:   true,
		Privileges: adminRole.Privileges,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		log.Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Warn("failed to create admin user", zap.Error(err))
		return
	}
	log.Info("admin user created", zap.String("email", cfg.AdminEmail))
}
