package core

import "testing"

func TestCursorAdvanceIsMonotone(t *testing.T) {
	c := NewReadCursors()

	c.Advance("samin", "nasir", 100)
	if got := c.Cursor("samin", "nasir"); got != 100 {
		t.Fatalf("cursor = %d, want 100", got)
	}

	c.Advance("samin", "nasir", 50)
	if got := c.Cursor("samin", "nasir"); got != 100 {
		t.Fatalf("older ts must not rewind cursor, got %d", got)
	}

	c.Advance("samin", "nasir", 200)
	if got := c.Cursor("samin", "nasir"); got != 200 {
		t.Fatalf("cursor = %d, want 200", got)
	}
}

func TestCursorDefaultsToZero(t *testing.T) {
	c := NewReadCursors()
	if got := c.Cursor("samin", "nasir"); got != 0 {
		t.Fatalf("unset cursor = %d, want 0", got)
	}
}

func TestUnreadCount(t *testing.T) {
	c := NewReadCursors()

	msgs := []Message{
		{SenderID: "nasir", RecipientID: "samin", SentAt: 10},
		{SenderID: "nasir", RecipientID: "samin", SentAt: 20},
		{SenderID: "samin", RecipientID: "nasir", SentAt: 25}, // wrong direction
		{SenderID: "rahim", RecipientID: "samin", SentAt: 30}, // wrong peer
		{SenderID: "nasir", RecipientID: "samin", SentAt: 40},
	}

	if got := c.UnreadCount("samin", "nasir", msgs); got != 3 {
		t.Fatalf("unread = %d, want 3", got)
	}

	c.Advance("samin", "nasir", 20)
	if got := c.UnreadCount("samin", "nasir", msgs); got != 1 {
		t.Fatalf("unread after cursor 20 = %d, want 1 (strictly greater only)", got)
	}

	c.Advance("samin", "nasir", 40)
	if got := c.UnreadCount("samin", "nasir", msgs); got != 0 {
		t.Fatalf("unread after cursor 40 = %d, want 0", got)
	}
}
