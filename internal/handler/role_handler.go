package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-backoffice/internal/repository"
)

type RoleHandler struct {
	roleRepo      repository.RoleRepository
	privilegeRepo repository.PrivilegeRepository
	logger        *zap.Logger
}

func NewRoleHandler(roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, privilegeRepo: privilegeRepo, logger: logger}
}

// GetRoles returns all available roles with their default privileges
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.FindAll()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(roles)
}

// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.privilegeRepo.FindAll()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(privileges)
}
