package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin     = "join"
	InboundTypeTyping   = "typing"
	InboundTypeSend     = "message:send"
	InboundTypeReceived = "message:received"
	InboundTypeRead     = "message:read"

	OutboundTypePresence  = "presence:update"
	OutboundTypeTyping    = "typing"
	OutboundTypeAck       = "message:ack"
	OutboundTypeNew       = "message:new"
	OutboundTypeDelivered = "message:delivered"
	OutboundTypeRead      = "message:read"
	OutboundTypeError     = "message:error"
)

// JoinData attaches a user identity to the connection and optionally opens
// a 1:1 thread with another user.
type JoinData struct {
	UserID  string `json:"userId"`
	OtherID string `json:"otherId,omitempty"`
}

// TypingData is a typing indicator, relayed to the rest of the room.
type TypingData struct {
	Room     string `json:"room"`
	From     string `json:"from"`
	IsTyping bool   `json:"isTyping"`
}

// SendData submits a new message. TempID is the client's correlation id for
// reconciling its optimistic local copy.
type SendData struct {
	TempID string `json:"tempId"`
	From   string `json:"from"`
	To     string `json:"to"`
	Text   string `json:"text"`
}

// AckData acknowledges delivery or reading of a message.
type AckData struct {
	ID string `json:"id"`
	By string `json:"by"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// PresenceData notifies about a user's online state change.
type PresenceData struct {
	UserID     string `json:"userId"`
	Online     bool   `json:"online"`
	LastSeenAt *int64 `json:"lastSeenAt,omitempty"`
}

// MessageData is the full message payload broadcast to a thread.
type MessageData struct {
	ID          string   `json:"id"`
	SenderID    string   `json:"senderId"`
	RecipientID string   `json:"recipientId"`
	Text        string   `json:"text"`
	SentAt      int64    `json:"sentAt"`
	DeliveredTo []string `json:"deliveredTo"`
	ReadBy      []string `json:"readBy"`
}

// AckResponse confirms a stored message to its sender.
type AckResponse struct {
	TempID string `json:"tempId"`
	ID     string `json:"id"`
	SentAt int64  `json:"sentAt"`
}

// ErrorData reports a rejected message back to its sender.
type ErrorData struct {
	TempID string `json:"tempId"`
	Error  string `json:"error"`
}
