package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"go-backoffice/internal/model"
)

// AuditRecorder stores audit entries without failing the request.
type AuditRecorder interface {
	Record(entry *model.AuditLog)
}

// Audit records every successful POST, PUT, PATCH and DELETE. Paths with
// one of skipPrefixes are ignored.
func Audit(recorder AuditRecorder, apiPrefix string, skipPrefixes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil || !isMutation(c.Method()) {
			return err
		}
		status := c.Response().StatusCode()
		if status >= fiber.StatusBadRequest {
			return nil
		}

		path := utils.CopyString(c.Path())
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(path, prefix) {
				return nil
			}
		}

		user, _ := c.Locals("user_email").(string)
		if user == "" {
			user = "anonymous"
		}

		recorder.Record(&model.AuditLog{
			Type:      auditType(strings.TrimPrefix(path, apiPrefix)),
			User:      user,
			Action:    c.Method() + " " + path,
			IPAddress: utils.CopyString(c.IP()),
			Details:   fmt.Sprintf("route=%s status=%d", c.Route().Path, status),
		})
		return nil
	}
}

func isMutation(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}

// auditType is the resource name, the first path segment after the API prefix.
func auditType(path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if segment == "" {
		return "system"
	}
	return segment
}
