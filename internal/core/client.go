package core

// Client is a single connection as seen by the hub. Identity is attached
// later, by a join command; until then the connection only has a handle.
type Client struct {
	ConnID   string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(connID string) *Client {
	return &Client{
		ConnID:   connID,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
	}
}
