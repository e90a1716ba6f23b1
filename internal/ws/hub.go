package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
)

var ErrHubStopped = errors.New("websocket hub stopped")

// Event types pushed to clients.
const (
	EventNotification = "notification"
	EventStockUpdate  = "stock_update"
	EventSale         = "sale_recorded"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one authenticated connection.
type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

// Event is the JSON envelope of every pushed message.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type outbound struct {
	users   map[uuid.UUID]bool // nil means everyone
	payload []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	outbound   chan outbound
	done       chan struct{}
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan outbound, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx ends, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.mutex.Lock()
		for c := range h.clients {
			c.Conn.Close()
			delete(h.clients, c)
		}
		h.mutex.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()
			h.logger.Debug("ws client connected", zap.String("user_id", c.UserID.String()))

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.Conn.Close()
			}
			h.mutex.Unlock()

		case msg := <-h.outbound:
			h.mutex.Lock()
			for c := range h.clients {
				if msg.users != nil && !msg.users[c.UserID] {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					h.logger.Debug("ws write failed, dropping client",
						zap.String("user_id", c.UserID.String()), zap.Error(err))
					c.Conn.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount is the number of live connections.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast queues event for every connected client.
func (h *Hub) Broadcast(ctx context.Context, event Event) error {
	return h.enqueue(ctx, nil, event)
}

// SendToUsers queues event for the connections of the given users only.
func (h *Hub) SendToUsers(ctx context.Context, userIDs []uuid.UUID, event Event) error {
	if len(userIDs) == 0 {
		return nil
	}
	users := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		users[id] = true
	}
	return h.enqueue(ctx, users, event)
}

func (h *Hub) enqueue(ctx context.Context, users map[uuid.UUID]bool, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	select {
	case h.outbound <- outbound{users: users, payload: payload}:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Name and Deliver make the hub a low-stock notification channel.
func (h *Hub) Name() string { return "websocket" }

func (h *Hub) Deliver(ctx context.Context, n *model.Notification) error {
	return h.SendToUsers(ctx, []uuid.UUID{n.UserID}, Event{Type: EventNotification, Data: n})
}
