package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Shoyas/chatline-server/internal/utils"
)

// MessageStore is an in-memory append-only log of messages with
// per-recipient delivery and read tracking. Safe for concurrent use.
type MessageStore struct {
	mu       sync.RWMutex
	messages []*Message
	byID     map[string]*Message
}

// NewMessageStore constructs an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		byID: make(map[string]*Message),
	}
}

// Append validates and stores a new message, returning a snapshot of it.
func (s *MessageStore) Append(senderID, recipientID, text string) (Message, error) {
	if senderID == "" || recipientID == "" {
		return Message{}, coreError(ErrCodeValidation, "sender and recipient are required")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, coreError(ErrCodeValidation, "text is required")
	}
	if len([]rune(trimmed)) > MaxTextLength {
		return Message{}, coreError(ErrCodeValidation, fmt.Sprintf("text exceeds %d characters", MaxTextLength))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := &Message{
		ID:          utils.NewID(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        trimmed,
		SentAt:      utils.NowMillis(),
		DeliveredTo: []string{},
		ReadBy:      []string{},
	}
	s.messages = append(s.messages, msg)
	s.byID[msg.ID] = msg

	return msg.snapshot(), nil
}

// MarkDelivered records that byUserID has received the message. Unknown ids
// are tolerated as no-ops so late or duplicate acks never fail. The returned
// bool reports whether the message exists.
func (s *MessageStore) MarkDelivered(messageID, byUserID string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[messageID]
	if !ok {
		return Message{}, false
	}
	if !msg.deliveredBy(byUserID) {
		msg.DeliveredTo = append(msg.DeliveredTo, byUserID)
	}
	return msg.snapshot(), true
}

// MarkRead records that byUserID has read the message, with the same
// unknown-id and idempotency policy as MarkDelivered.
func (s *MessageStore) MarkRead(messageID, byUserID string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[messageID]
	if !ok {
		return Message{}, false
	}
	if !msg.readBy(byUserID) {
		msg.ReadBy = append(msg.ReadBy, byUserID)
	}
	return msg.snapshot(), true
}

// MarkThreadRead marks every message from senderID to recipientID as read by
// recipientID and returns snapshots of the messages that were newly read.
// The whole scan runs under one lock hold so it is atomic with respect to
// concurrent per-message acks.
func (s *MessageStore) MarkThreadRead(senderID, recipientID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []Message
	for _, msg := range s.messages {
		if msg.SenderID != senderID || msg.RecipientID != recipientID {
			continue
		}
		if msg.readBy(recipientID) {
			continue
		}
		msg.ReadBy = append(msg.ReadBy, recipientID)
		updated = append(updated, msg.snapshot())
	}
	return updated
}

// Thread returns up to limit messages exchanged between userA and userB with
// SentAt strictly before beforeTs, in ascending SentAt order. The limit is
// clamped to [1,200]. Appends take the current time under the store lock, so
// store order and SentAt order coincide and the slice is already sorted.
func (s *MessageStore) Thread(userA, userB string, beforeTs int64, limit int) []Message {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var page []Message
	for _, msg := range s.messages {
		if msg.SentAt >= beforeTs {
			continue
		}
		if !betweenUsers(msg, userA, userB) {
			continue
		}
		page = append(page, msg.snapshot())
	}
	if len(page) > limit {
		page = page[len(page)-limit:]
	}
	return page
}

// MessagesInvolving returns snapshots of all messages sent or received by
// userID, in store order.
func (s *MessageStore) MessagesInvolving(userID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Message
	for _, msg := range s.messages {
		if msg.SenderID == userID || msg.RecipientID == userID {
			out = append(out, msg.snapshot())
		}
	}
	return out
}

// Len reports the number of stored messages.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func betweenUsers(msg *Message, userA, userB string) bool {
	if msg.SenderID == userA && msg.RecipientID == userB {
		return true
	}
	return msg.SenderID == userB && msg.RecipientID == userA
}
