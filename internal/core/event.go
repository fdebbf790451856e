package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventPresenceUpdate notifies clients that a user went online or offline.
	EventPresenceUpdate EventKind = iota
	// EventTyping relays a typing indicator inside a thread scope.
	EventTyping
	// EventMessageAck confirms a submitted message to its sender.
	EventMessageAck
	// EventNewMessage carries a stored message to a thread scope.
	EventNewMessage
	// EventMessageDelivered notifies a sender that a recipient received a message.
	EventMessageDelivered
	// EventMessageRead notifies a sender that a recipient read a message.
	EventMessageRead
	// EventError notifies the originating client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind EventKind

	Presence PresenceUpdate // EventPresenceUpdate

	Room     string // EventTyping
	From     string
	IsTyping bool

	TempID  string  // EventMessageAck, EventError
	Message Message // EventMessageAck, EventNewMessage

	MessageID string // EventMessageDelivered, EventMessageRead
	By        string

	Error *CoreError // EventError
}
