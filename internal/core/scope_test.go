package core

import "testing"

func TestScopeKeyOrderIndependent(t *testing.T) {
	pairs := [][2]string{
		{"nasir", "samin"},
		{"samin", "nasir"},
		{"a", "b"},
		{"zed", "amy"},
		{"same", "same"},
	}
	for _, p := range pairs {
		if got, want := ScopeKey(p[0], p[1]), ScopeKey(p[1], p[0]); got != want {
			t.Errorf("ScopeKey(%q,%q)=%q != ScopeKey(%q,%q)=%q", p[0], p[1], got, p[1], p[0], want)
		}
	}

	if got := ScopeKey("nasir", "samin"); got != "nasir:samin" {
		t.Errorf("unexpected scope key: %q", got)
	}
}

func TestScopeBroadcastExceptSkipsSender(t *testing.T) {
	scope := NewScope("nasir:samin")
	a := NewClient("conn-a")
	b := NewClient("conn-b")
	scope.AddClient(a)
	scope.AddClient(b)

	scope.BroadcastExcept(&Event{Kind: EventTyping, Room: "nasir:samin", From: "nasir"}, a)

	select {
	case ev := <-b.Events:
		if ev.Kind != EventTyping || ev.From != "nasir" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("expected typing event for b")
	}

	select {
	case ev := <-a.Events:
		t.Fatalf("sender should not receive its own typing event, got %+v", ev)
	default:
	}
}

func TestScopeAddRemove(t *testing.T) {
	scope := NewScope("nasir")
	c := NewClient("conn-1")

	if !scope.AddClient(c) {
		t.Fatal("first add should report newly added")
	}
	if scope.AddClient(c) {
		t.Fatal("second add should report already present")
	}
	if scope.Empty() {
		t.Fatal("scope with one client is not empty")
	}
	if !scope.RemoveClient(c) {
		t.Fatal("remove should report removed")
	}
	if scope.RemoveClient(c) {
		t.Fatal("second remove should report absent")
	}
	if !scope.Empty() {
		t.Fatal("scope should be empty after removal")
	}
}
