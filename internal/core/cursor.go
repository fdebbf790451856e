package core

import "sync"

// ReadCursors keeps a per-(viewer, peer) watermark timestamp. Messages from
// peer to viewer sent at or before the watermark count as read.
type ReadCursors struct {
	mu      sync.Mutex
	cursors map[string]map[string]int64
}

// NewReadCursors constructs an empty cursor map.
func NewReadCursors() *ReadCursors {
	return &ReadCursors{cursors: make(map[string]map[string]int64)}
}

// Advance moves the viewer's cursor for peer forward to ts. The cursor is
// monotone: an older ts never rewinds it.
func (c *ReadCursors) Advance(viewerID, peerID string, ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byPeer, ok := c.cursors[viewerID]
	if !ok {
		byPeer = make(map[string]int64)
		c.cursors[viewerID] = byPeer
	}
	if ts > byPeer[peerID] {
		byPeer[peerID] = ts
	}
}

// Cursor returns the viewer's watermark for peer, 0 when unset.
func (c *ReadCursors) Cursor(viewerID, peerID string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursors[viewerID][peerID]
}

// UnreadCount counts messages in msgs addressed to viewerID from peerID that
// were sent strictly after the viewer's cursor for that peer.
func (c *ReadCursors) UnreadCount(viewerID, peerID string, msgs []Message) int {
	cursor := c.Cursor(viewerID, peerID)

	count := 0
	for _, msg := range msgs {
		if msg.SenderID == peerID && msg.RecipientID == viewerID && msg.SentAt > cursor {
			count++
		}
	}
	return count
}
