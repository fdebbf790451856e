package core

import (
	"sort"

	"github.com/Shoyas/chatline-server/internal/utils"
)

// ThreadSummary is the derived per-peer conversation overview.
type ThreadSummary struct {
	PeerID          string
	PeerName        string
	LastMessageText string
	LastMessageAt   int64
	UnreadCount     int
}

// Service owns all chat state: the roster directory, the message log,
// presence and read cursors. Every mutation goes through its methods; each
// underlying structure carries its own lock, so the service is safe to call
// from the hub goroutine and HTTP handlers alike.
type Service struct {
	dir      *Directory
	store    *MessageStore
	presence *PresenceTracker
	cursors  *ReadCursors
}

// NewService wires the owned state together.
func NewService(dir *Directory) *Service {
	return &Service{
		dir:      dir,
		store:    NewMessageStore(),
		presence: NewPresenceTracker(),
		cursors:  NewReadCursors(),
	}
}

// Directory exposes the roster.
func (s *Service) Directory() *Directory { return s.dir }

// Store exposes the message log.
func (s *Service) Store() *MessageStore { return s.store }

// Presence exposes the presence tracker.
func (s *Service) Presence() *PresenceTracker { return s.presence }

// Cursors exposes the read-cursor tracker.
func (s *Service) Cursors() *ReadCursors { return s.cursors }

// MarkThreadRead advances the viewer's cursor for peer to now and marks all
// peer-to-viewer messages as read by the viewer. It returns the messages
// that were newly read so the gateway can notify the peer's personal scope.
func (s *Service) MarkThreadRead(viewerID, peerID string) []Message {
	updated := s.store.MarkThreadRead(peerID, viewerID)
	s.cursors.Advance(viewerID, peerID, utils.NowMillis())
	return updated
}

// ThreadSummaries computes one summary per conversation partner of userID,
// sorted by last message time descending.
func (s *Service) ThreadSummaries(userID string) []ThreadSummary {
	msgs := s.store.MessagesInvolving(userID)

	latest := make(map[string]Message)
	for _, msg := range msgs {
		peer := msg.SenderID
		if peer == userID {
			peer = msg.RecipientID
		}
		// Store order is ascending, so the last write wins.
		latest[peer] = msg
	}

	summaries := make([]ThreadSummary, 0, len(latest))
	for peer, last := range latest {
		summaries = append(summaries, ThreadSummary{
			PeerID:          peer,
			PeerName:        s.dir.Name(peer),
			LastMessageText: last.Text,
			LastMessageAt:   last.SentAt,
			UnreadCount:     s.cursors.UnreadCount(userID, peer, msgs),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt > summaries[j].LastMessageAt
	})
	return summaries
}
