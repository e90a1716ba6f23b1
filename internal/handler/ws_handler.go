package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backoffice/internal/ws"
)

type WebSocketHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// RequireUpgrade rejects plain HTTP requests to the websocket route.
func (h *WebSocketHandler) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Serve registers the authenticated connection with the hub and reads
// until the client goes away. Incoming messages are ignored.
func (h *WebSocketHandler) Serve() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		raw, _ := c.Locals("user_id").(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.Close()
			return
		}

		client := &ws.Client{UserID: userID, Conn: c}
		if err := h.hub.Register(client); err != nil {
			h.logger.Warn("websocket register failed", zap.String("user_id", raw), zap.Error(err))
			c.Close()
			return
		}
		defer h.hub.Unregister(client)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
