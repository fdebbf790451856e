package core

// MaxTextLength is the longest message text accepted, in characters.
const MaxTextLength = 2000

// Message is the domain model for a direct message.
// SenderID, RecipientID, Text and SentAt never change after creation;
// DeliveredTo and ReadBy only ever grow.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Text        string
	SentAt      int64 // unix milliseconds
	DeliveredTo []string
	ReadBy      []string
}

func (m *Message) deliveredBy(userID string) bool {
	for _, id := range m.DeliveredTo {
		if id == userID {
			return true
		}
	}
	return false
}

func (m *Message) readBy(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// snapshot returns a copy safe to hand out past the store lock.
func (m *Message) snapshot() Message {
	out := *m
	out.DeliveredTo = append([]string(nil), m.DeliveredTo...)
	out.ReadBy = append([]string(nil), m.ReadBy...)
	return out
}
