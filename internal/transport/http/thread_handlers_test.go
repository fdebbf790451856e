package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Shoyas/chatline-server/internal/core"
)

func TestGetThreadReturnsAscendingPage(t *testing.T) {
	server, _, svc := createTestServer(t)

	svc.Store().Append("nasir", "samin", "one")
	time.Sleep(2 * time.Millisecond)
	svc.Store().Append("samin", "nasir", "two")
	time.Sleep(2 * time.Millisecond)
	svc.Store().Append("nasir", "rahim", "other")

	req := httptest.NewRequest(http.MethodGet, "/messages/samin/nasir", nil)
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}

	var msgs []MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("unmarshal messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 thread messages, got %d", len(msgs))
	}
	if msgs[0].Text != "one" || msgs[1].Text != "two" {
		t.Errorf("unexpected order: %+v", msgs)
	}
}

func TestGetThreadPagination(t *testing.T) {
	server, _, svc := createTestServer(t)

	var sentAts []int64
	for _, text := range []string{"a", "b", "c"} {
		msg, _ := svc.Store().Append("nasir", "samin", text)
		sentAts = append(sentAts, msg.SentAt)
		time.Sleep(2 * time.Millisecond)
	}

	url := fmt.Sprintf("/messages/nasir/samin?before=%s&limit=1", strconv.FormatInt(sentAts[2], 10))
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, url, nil))

	var msgs []MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("unmarshal messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "b" {
		t.Fatalf("expected page [b], got %+v", msgs)
	}
}

func TestListThreadsSummaries(t *testing.T) {
	server, _, svc := createTestServer(t)

	svc.Store().Append("nasir", "samin", "hello samin")
	time.Sleep(2 * time.Millisecond)
	svc.Store().Append("rahim", "samin", "from rahim")

	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/threads/samin", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}

	var summaries []ThreadSummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("unmarshal summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	// Most recent first.
	if summaries[0].PeerID != "rahim" || summaries[1].PeerID != "nasir" {
		t.Errorf("unexpected order: %+v", summaries)
	}
	if summaries[0].PeerName != "Rahim Ahmed" || summaries[0].UnreadCount != 1 {
		t.Errorf("unexpected summary: %+v", summaries[0])
	}
}

func TestMarkThreadReadUpdatesStateAndNotifiesPeer(t *testing.T) {
	server, hub, svc := createTestServer(t)

	// nasir is connected and subscribed to his personal scope.
	nasir := core.NewClient("conn-n")
	hub.RegisterClient(nasir)
	nasir.Commands <- &core.Command{Kind: core.CommandJoin, UserID: "nasir"}
	waitEvent(t, nasir.Events, func(ev *core.Event) bool {
		return ev.Kind == core.EventPresenceUpdate
	})

	first, _ := svc.Store().Append("nasir", "samin", "one")
	second, _ := svc.Store().Append("nasir", "samin", "two")

	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/threads/samin/read/nasir", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("expected ok response, got %s", resp.Body.String())
	}

	// Both messages now read by samin.
	for _, id := range []string{first.ID, second.ID} {
		snap, ok := svc.Store().MarkRead(id, "samin")
		if !ok || len(snap.ReadBy) != 1 || snap.ReadBy[0] != "samin" {
			t.Errorf("message %s read state: %+v", id, snap.ReadBy)
		}
	}

	// Cursor advanced: nothing unread for (samin, nasir) anymore.
	msgs := svc.Store().MessagesInvolving("samin")
	if got := svc.Cursors().UnreadCount("samin", "nasir", msgs); got != 0 {
		t.Errorf("unread after read = %d, want 0", got)
	}

	// nasir's personal scope receives one message:read per message.
	got := make(map[string]bool)
	for i := 0; i < 2; i++ {
		ev := waitEvent(t, nasir.Events, func(ev *core.Event) bool {
			return ev.Kind == core.EventMessageRead
		})
		if ev.By != "samin" {
			t.Errorf("read event by %q, want samin", ev.By)
		}
		got[ev.MessageID] = true
	}
	if !got[first.ID] || !got[second.ID] {
		t.Errorf("expected read events for both messages, got %v", got)
	}
}

func TestMarkThreadReadEmptyThread(t *testing.T) {
	server, _, _ := createTestServer(t)

	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/threads/samin/read/nasir", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("marking an empty thread read must still succeed: %d", resp.Code)
	}
}
