package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin attaches a user identity to the connection and optionally
	// enters a 1:1 thread.
	CommandJoin CommandKind = iota
	// CommandTyping relays a typing indicator to the rest of a thread scope.
	CommandTyping
	// CommandSendMessage submits a new direct message.
	CommandSendMessage
	// CommandDelivered acknowledges delivery of a message.
	CommandDelivered
	// CommandRead acknowledges reading of a message.
	CommandRead
)

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind

	// CommandJoin
	UserID  string
	OtherID string

	// CommandTyping
	Room     string
	From     string
	IsTyping bool

	// CommandSendMessage
	TempID string
	To     string
	Text   string

	// CommandDelivered / CommandRead
	MessageID string
	By        string
}
