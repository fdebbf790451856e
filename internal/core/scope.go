package core

// ScopeKey derives the canonical thread scope identifier for a pair of
// users. The ids are sorted before joining, so both participants compute
// the same key regardless of argument order.
func ScopeKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// Scope groups connections that receive the same broadcasts. A personal
// scope is named after a user id; a thread scope is named by ScopeKey.
type Scope struct {
	ID      string
	clients map[*Client]struct{}
}

// NewScope constructs a scope with no clients.
func NewScope(id string) *Scope {
	return &Scope{
		ID:      id,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the scope. Returns true if newly added.
func (s *Scope) AddClient(c *Client) bool {
	if _, exists := s.clients[c]; exists {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the scope. Returns true if removed.
func (s *Scope) RemoveClient(c *Client) bool {
	if _, exists := s.clients[c]; !exists {
		return false
	}
	delete(s.clients, c)
	return true
}

// Broadcast sends an event to all clients in the scope.
func (s *Scope) Broadcast(event *Event) {
	s.BroadcastExcept(event, nil)
}

// BroadcastExcept sends an event to all clients in the scope other than skip.
func (s *Scope) BroadcastExcept(event *Event, skip *Client) {
	for client := range s.clients {
		if client == skip {
			continue
		}
		select {
		case client.Events <- event:
		default:
			// Drop if slow consumer.
		}
	}
}

// Empty returns true if no clients are in the scope.
func (s *Scope) Empty() bool {
	return len(s.clients) == 0
}
