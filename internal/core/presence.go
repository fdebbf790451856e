package core

import (
	"sync"

	"github.com/Shoyas/chatline-server/internal/utils"
)

// PresenceUpdate describes a change in a user's online state.
type PresenceUpdate struct {
	UserID     string
	Online     bool
	LastSeenAt int64 // unix milliseconds, 0 when never seen offline
}

type presenceEntry struct {
	conns    map[string]struct{}
	lastSeen int64
}

// PresenceTracker tracks active connections per user. A user is online while
// at least one connection is registered; connections are tracked as a set so
// several sockets for the same user never clobber each other.
type PresenceTracker struct {
	mu      sync.Mutex
	entries map[string]*presenceEntry
}

// NewPresenceTracker constructs an empty tracker.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{entries: make(map[string]*presenceEntry)}
}

// Join registers a connection handle under userID. It returns an online
// update for every join, not only for the offline-to-online transition;
// clients rely on the repeated broadcast to refresh stale presence lists.
func (p *PresenceTracker) Join(userID, connID string) PresenceUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		entry = &presenceEntry{conns: make(map[string]struct{})}
		p.entries[userID] = entry
	}
	entry.conns[connID] = struct{}{}

	return PresenceUpdate{UserID: userID, Online: true, LastSeenAt: entry.lastSeen}
}

// Leave removes a connection handle. When the last connection for the user
// goes away it stamps lastSeen and returns an offline update; otherwise the
// second return is false and nothing should be broadcast.
func (p *PresenceTracker) Leave(userID, connID string) (PresenceUpdate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		return PresenceUpdate{}, false
	}
	delete(entry.conns, connID)
	if len(entry.conns) > 0 {
		return PresenceUpdate{}, false
	}

	entry.lastSeen = utils.NowMillis()
	return PresenceUpdate{UserID: userID, Online: false, LastSeenAt: entry.lastSeen}, true
}

// Status reports whether the user is online and when they were last seen.
func (p *PresenceTracker) Status(userID string) (bool, int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[userID]
	if !ok {
		return false, 0
	}
	return len(entry.conns) > 0, entry.lastSeen
}
