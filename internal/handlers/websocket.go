package handlers

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/maeve/habitflow-api/internal/middleware"
)

// Event types sent over WebSocket
const (
	EventHabitCreated = "habit_created"
	EventHabitUpdated = "habit_updated"
	EventHabitDeleted = "habit_deleted"
	EventGoalCreated  = "goal_created"
	EventGoalDeleted  = "goal_deleted"
	EventGoalsReaped  = "goals_reaped"
)

// WSEvent is the JSON message sent to connected clients. OwnerID names the
// data partition the event belongs to, UserID the actor.
type WSEvent struct {
	Type    string      `json:"type"`
	OwnerID string      `json:"ownerId"`
	UserID  string      `json:"userId"`
	Data    interface{} `json:"data,omitempty"`
}

// connection wraps a websocket connection with its viewer ID (uuid.Nil for
// anonymous share-link viewers).
type connection struct {
	conn     *websocket.Conn
	viewerID uuid.UUID
}

// Hub manages WebSocket connections per tracker partition.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*connection]bool // partition ownerID -> set of connections
}

// Global hub instance
var WS = &Hub{
	rooms: make(map[uuid.UUID]map[*connection]bool),
}

func (h *Hub) register(ownerID uuid.UUID, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[ownerID] == nil {
		h.rooms[ownerID] = make(map[*connection]bool)
	}
	h.rooms[ownerID][conn] = true
	log.Printf("WS register: viewer %s watching tracker %s (total: %d)", conn.viewerID, ownerID, len(h.rooms[ownerID]))
}

func (h *Hub) unregister(ownerID uuid.UUID, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[ownerID]; ok {
		delete(conns, conn)
		log.Printf("WS unregister: viewer %s left tracker %s (remaining: %d)", conn.viewerID, ownerID, len(conns))
		if len(conns) == 0 {
			delete(h.rooms, ownerID)
		}
	}
}

// Broadcast sends an event to everyone watching a tracker partition,
// excluding the actor who triggered it.
func (h *Hub) Broadcast(ownerID uuid.UUID, excludeViewerID uuid.UUID, event WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[ownerID]
	if !ok {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("WS broadcast marshal error: %v", err)
		return
	}

	for c := range conns {
		if c.viewerID != uuid.Nil && c.viewerID == excludeViewerID {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("WS write error: %v", err)
		}
	}
}

// WebSocketUpgrade checks the upgrade request and parses the JWT when one
// is supplied. Anonymous connections are allowed: share-link viewers watch
// a tracker without an account, and the read-only scope is enforced by the
// HTTP mutation routes, not here.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Authenticate via query param: ?token=<jwt>
		tokenString := c.Query("token")
		if tokenString != "" {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				secret = "your-secret-key-change-in-production"
			}
			token, err := jwt.ParseWithClaims(tokenString, &middleware.Claims{}, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or expired token",
				})
			}
			if claims, ok := token.Claims.(*middleware.Claims); ok {
				c.Locals("userId", claims.UserID)
			}
		}

		return c.Next()
	}
}

// HandleWebSocket attaches a connection to the tracker partition named in
// the URL and keeps it open until the client goes away.
func HandleWebSocket(c *websocket.Conn) {
	ownerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Close()
		return
	}

	viewerID, _ := c.Locals("userId").(uuid.UUID)

	conn := &connection{conn: c, viewerID: viewerID}
	WS.register(ownerID, conn)
	defer WS.unregister(ownerID, conn)

	// Read loop keeps the connection alive; clients only send keepalives.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
