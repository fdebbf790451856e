package core

import (
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()
	return mustEventFunc(t, ch, func(ev *Event) bool { return ev.Kind == kind })
}

// mustEventFunc polls the channel, discarding events until one matches.
func mustEventFunc(t *testing.T, ch <-chan *Event, match func(*Event) bool) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if match(ev) {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event not received")
	return nil
}

// mustNoEvent asserts that no event of the given kind arrives for a while.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()
	mustNoEventFunc(t, ch, func(ev *Event) bool { return ev.Kind == kind })
}

func mustNoEventFunc(t *testing.T, ch <-chan *Event, match func(*Event) bool) {
	t.Helper()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && match(ev) {
				t.Fatalf("unexpected event received: %+v", ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}
