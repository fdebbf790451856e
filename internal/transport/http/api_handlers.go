package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shoyas/chatline-server/internal/core"
)

// ChatHandlers provides HTTP handlers for the REST surface.
type ChatHandlers struct {
	hub *core.Hub
	svc *core.Service
	log *zerolog.Logger
}

// NewChatHandlers creates a new handlers instance.
func NewChatHandlers(hub *core.Hub, svc *core.Service, logger *zerolog.Logger) *ChatHandlers {
	return &ChatHandlers{
		hub: hub,
		svc: svc,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ContactResponse represents a roster entry in API responses.
type ContactResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PresenceResponse represents a user's presence state.
type PresenceResponse struct {
	Online     bool   `json:"online"`
	LastSeenAt *int64 `json:"lastSeenAt"`
}

// ListContacts returns the fixed roster in insertion order.
// GET /contacts
func (h *ChatHandlers) ListContacts(c *gin.Context) {
	users := h.svc.Directory().Users()

	response := make([]ContactResponse, 0, len(users))
	for _, u := range users {
		response = append(response, ContactResponse{ID: u.ID, Name: u.DisplayName})
	}
	c.JSON(http.StatusOK, response)
}

// GetPresence reports whether a user is online and when they were last seen.
// GET /presence/:userID
func (h *ChatHandlers) GetPresence(c *gin.Context) {
	userID := c.Param("userID")

	online, lastSeen := h.svc.Presence().Status(userID)
	resp := PresenceResponse{Online: online}
	if lastSeen > 0 {
		resp.LastSeenAt = &lastSeen
	}
	c.JSON(http.StatusOK, resp)
}
