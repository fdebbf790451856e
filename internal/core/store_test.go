package core

import (
	"strings"
	"testing"
	"time"
)

func TestAppendStoresTrimmedMessage(t *testing.T) {
	store := NewMessageStore()

	msg, err := store.Append("nasir", "samin", "  hi there  ")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if msg.Text != "hi there" {
		t.Errorf("expected trimmed text, got %q", msg.Text)
	}
	if msg.ID == "" || msg.SentAt == 0 {
		t.Errorf("expected id and timestamp, got %+v", msg)
	}
	if len(msg.DeliveredTo) != 0 || len(msg.ReadBy) != 0 {
		t.Errorf("new message must have empty delivery state: %+v", msg)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 stored message, got %d", store.Len())
	}
}

func TestAppendUniqueIDs(t *testing.T) {
	store := NewMessageStore()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		msg, err := store.Append("nasir", "samin", "hello")
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if _, dup := seen[msg.ID]; dup {
			t.Fatalf("duplicate id %q", msg.ID)
		}
		seen[msg.ID] = struct{}{}
	}
	if store.Len() != 50 {
		t.Errorf("expected 50 messages, got %d", store.Len())
	}
}

func TestAppendValidation(t *testing.T) {
	store := NewMessageStore()

	cases := []struct {
		name      string
		sender    string
		recipient string
		text      string
	}{
		{"empty text", "nasir", "samin", ""},
		{"whitespace text", "nasir", "samin", "   \n\t "},
		{"oversized text", "nasir", "samin", strings.Repeat("x", 2001)},
		{"empty sender", "", "samin", "hi"},
		{"empty recipient", "nasir", "", "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Append(tc.sender, tc.recipient, tc.text)
			if err == nil {
				t.Fatal("expected validation error")
			}
			coreErr, ok := err.(*CoreError)
			if !ok || coreErr.Code != ErrCodeValidation {
				t.Fatalf("expected validation CoreError, got %v", err)
			}
		})
	}
	if store.Len() != 0 {
		t.Errorf("rejected messages must not be stored, have %d", store.Len())
	}
}

func TestAppendAcceptsMaxLengthText(t *testing.T) {
	store := NewMessageStore()

	if _, err := store.Append("nasir", "samin", strings.Repeat("x", 2000)); err != nil {
		t.Fatalf("2000-char text should be accepted: %v", err)
	}
}

func TestMarkDeliveredIdempotent(t *testing.T) {
	store := NewMessageStore()
	msg, _ := store.Append("nasir", "samin", "hi")

	first, ok := store.MarkDelivered(msg.ID, "samin")
	if !ok {
		t.Fatal("expected message to exist")
	}
	second, ok := store.MarkDelivered(msg.ID, "samin")
	if !ok {
		t.Fatal("expected message to exist on repeat")
	}
	if len(first.DeliveredTo) != 1 || len(second.DeliveredTo) != 1 {
		t.Errorf("delivery set must be idempotent: %v vs %v", first.DeliveredTo, second.DeliveredTo)
	}
	if second.DeliveredTo[0] != "samin" {
		t.Errorf("unexpected delivery set: %v", second.DeliveredTo)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	store := NewMessageStore()
	msg, _ := store.Append("nasir", "samin", "hi")

	store.MarkRead(msg.ID, "samin")
	snap, ok := store.MarkRead(msg.ID, "samin")
	if !ok {
		t.Fatal("expected message to exist")
	}
	if len(snap.ReadBy) != 1 || snap.ReadBy[0] != "samin" {
		t.Errorf("read set must be idempotent: %v", snap.ReadBy)
	}
}

func TestMarkUnknownMessageIsNoop(t *testing.T) {
	store := NewMessageStore()
	store.Append("nasir", "samin", "hi")

	if _, ok := store.MarkDelivered("zzz", "samin"); ok {
		t.Fatal("unknown id must report not found")
	}
	if _, ok := store.MarkRead("zzz", "samin"); ok {
		t.Fatal("unknown id must report not found")
	}
	if store.Len() != 1 {
		t.Errorf("store must be unchanged, have %d", store.Len())
	}
}

func TestThreadFiltersAndOrders(t *testing.T) {
	store := NewMessageStore()

	store.Append("nasir", "samin", "one")
	time.Sleep(2 * time.Millisecond)
	store.Append("samin", "nasir", "two")
	time.Sleep(2 * time.Millisecond)
	store.Append("nasir", "rahim", "other thread")
	time.Sleep(2 * time.Millisecond)
	store.Append("nasir", "samin", "three")

	page := store.Thread("samin", "nasir", time.Now().UnixMilli()+1, 50)
	if len(page) != 3 {
		t.Fatalf("expected 3 thread messages, got %d", len(page))
	}
	if page[0].Text != "one" || page[1].Text != "two" || page[2].Text != "three" {
		t.Errorf("unexpected order: %q %q %q", page[0].Text, page[1].Text, page[2].Text)
	}
	for i := 1; i < len(page); i++ {
		if page[i].SentAt < page[i-1].SentAt {
			t.Errorf("page not ascending at %d", i)
		}
	}
}

func TestThreadPagination(t *testing.T) {
	store := NewMessageStore()

	var sentAts []int64
	for _, text := range []string{"a", "b", "c", "d"} {
		msg, _ := store.Append("nasir", "samin", text)
		sentAts = append(sentAts, msg.SentAt)
		time.Sleep(2 * time.Millisecond)
	}

	// Newest page of 2.
	page := store.Thread("nasir", "samin", time.Now().UnixMilli()+1, 2)
	if len(page) != 2 || page[0].Text != "c" || page[1].Text != "d" {
		t.Fatalf("unexpected newest page: %+v", page)
	}

	// Page before "c": strictly older messages only.
	older := store.Thread("nasir", "samin", sentAts[2], 2)
	if len(older) != 2 || older[0].Text != "a" || older[1].Text != "b" {
		t.Fatalf("unexpected older page: %+v", older)
	}
}

func TestThreadLimitClamp(t *testing.T) {
	store := NewMessageStore()
	for i := 0; i < 3; i++ {
		store.Append("nasir", "samin", "msg")
	}

	before := time.Now().UnixMilli() + 1
	if got := len(store.Thread("nasir", "samin", before, 0)); got != 1 {
		t.Errorf("limit 0 must clamp to 1, got %d messages", got)
	}
	if got := len(store.Thread("nasir", "samin", before, -5)); got != 1 {
		t.Errorf("negative limit must clamp to 1, got %d messages", got)
	}
	if got := len(store.Thread("nasir", "samin", before, 10000)); got != 3 {
		t.Errorf("oversized limit returns all available, got %d", got)
	}
}

func TestMarkThreadReadMarksOnlyOneDirection(t *testing.T) {
	store := NewMessageStore()
	store.Append("nasir", "samin", "one")
	store.Append("samin", "nasir", "reply")
	store.Append("nasir", "samin", "two")

	updated := store.MarkThreadRead("nasir", "samin")
	if len(updated) != 2 {
		t.Fatalf("expected 2 newly-read messages, got %d", len(updated))
	}
	for _, msg := range updated {
		if msg.SenderID != "nasir" || len(msg.ReadBy) != 1 || msg.ReadBy[0] != "samin" {
			t.Errorf("unexpected read state: %+v", msg)
		}
	}

	// Second call is a no-op: everything already read.
	if again := store.MarkThreadRead("nasir", "samin"); len(again) != 0 {
		t.Errorf("repeat mark must return nothing, got %d", len(again))
	}
}

func TestMessagesInvolving(t *testing.T) {
	store := NewMessageStore()
	store.Append("nasir", "samin", "one")
	store.Append("samin", "nasir", "two")
	store.Append("rahim", "karim", "unrelated")

	msgs := store.MessagesInvolving("nasir")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
}
