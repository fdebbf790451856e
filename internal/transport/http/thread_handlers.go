package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shoyas/chatline-server/internal/core"
	"github.com/Shoyas/chatline-server/internal/utils"
)

const defaultPageLimit = 50

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID          string   `json:"id"`
	SenderID    string   `json:"senderId"`
	RecipientID string   `json:"recipientId"`
	Text        string   `json:"text"`
	SentAt      int64    `json:"sentAt"`
	DeliveredTo []string `json:"deliveredTo"`
	ReadBy      []string `json:"readBy"`
}

// ThreadSummaryResponse represents one conversation overview.
type ThreadSummaryResponse struct {
	PeerID          string `json:"peerId"`
	PeerName        string `json:"peerName"`
	LastMessageText string `json:"lastMessageText"`
	LastMessageAt   int64  `json:"lastMessageAt"`
	UnreadCount     int    `json:"unreadCount"`
}

// GetThread returns a page of messages between two users in ascending time
// order. `before` defaults to just past now so the newest page comes back;
// `limit` defaults to 50 and is clamped by the store.
// GET /messages/:userA/:userB?before=<ts>&limit=<n>
func (h *ChatHandlers) GetThread(c *gin.Context) {
	userA := c.Param("userA")
	userB := c.Param("userB")

	before := utils.NowMillis() + 1
	if raw := c.Query("before"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			before = parsed
		}
	}
	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	page := h.svc.Store().Thread(userA, userB, before, limit)
	c.JSON(http.StatusOK, messageResponses(page))
}

// ListThreads returns one summary per conversation partner of the user,
// most recent conversation first.
// GET /threads/:userID
func (h *ChatHandlers) ListThreads(c *gin.Context) {
	userID := c.Param("userID")

	summaries := h.svc.ThreadSummaries(userID)
	response := make([]ThreadSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, ThreadSummaryResponse{
			PeerID:          s.PeerID,
			PeerName:        s.PeerName,
			LastMessageText: s.LastMessageText,
			LastMessageAt:   s.LastMessageAt,
			UnreadCount:     s.UnreadCount,
		})
	}
	c.JSON(http.StatusOK, response)
}

// MarkThreadRead advances the viewer's cursor for the peer and marks every
// message from the peer as read, notifying the peer's personal scope about
// each newly-read message.
// POST /threads/:userID/read/:otherID
func (h *ChatHandlers) MarkThreadRead(c *gin.Context) {
	viewerID := c.Param("userID")
	peerID := c.Param("otherID")

	updated := h.svc.MarkThreadRead(viewerID, peerID)
	for _, msg := range updated {
		h.hub.Publish(peerID, &core.Event{
			Kind:      core.EventMessageRead,
			MessageID: msg.ID,
			By:        viewerID,
		})
	}

	h.log.Debug().Str("viewer", viewerID).Str("peer", peerID).
		Int("marked", len(updated)).Msg("thread marked read")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func messageResponses(msgs []core.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageResponse{
			ID:          m.ID,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			Text:        m.Text,
			SentAt:      m.SentAt,
			DeliveredTo: m.DeliveredTo,
			ReadBy:      m.ReadBy,
		})
	}
	return out
}
