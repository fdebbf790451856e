package http

import (
	"context"
	"database/sql"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shoyas/chatline-server/internal/config"
	"github.com/Shoyas/chatline-server/internal/core"
	"github.com/Shoyas/chatline-server/internal/roster/sqlite"
)

// createTestDirectory loads a small fixed roster through an in-memory
// SQLite store, the same path production wiring takes.
func createTestDirectory(t *testing.T) *core.Directory {
	t.Helper()

	schema := `
	CREATE TABLE users (
		id           TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		position     INTEGER NOT NULL
	);

	INSERT INTO users (id, display_name, position) VALUES
		('nasir', 'Nasir Uddin', 0),
		('samin', 'Samin Yasar', 1),
		('rahim', 'Rahim Ahmed', 2);
	`

	st, err := sqlite.NewWithSetup(":memory:", func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	})
	if err != nil {
		t.Fatalf("failed to create test roster: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	users, err := st.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("failed to list test roster: %v", err)
	}

	dirUsers := make([]core.User, 0, len(users))
	for _, u := range users {
		dirUsers = append(dirUsers, core.User{ID: u.ID, DisplayName: u.DisplayName})
	}
	return core.NewDirectory(dirUsers)
}

// createTestServer builds a full server over an in-memory service with a
// running hub.
func createTestServer(t *testing.T) (*stdhttp.Server, *core.Hub, *core.Service) {
	t.Helper()

	svc := core.NewService(createTestDirectory(t))

	disabledLogger := zerolog.Nop()
	hub := core.NewHub(svc, &disabledLogger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		MaxMessageBytes:   1 << 20,
	}

	server := NewServer(hub, svc, &cfg, &disabledLogger)
	return server, hub, svc
}

// waitEvent polls a client's event channel until an event matches.
func waitEvent(t *testing.T, ch <-chan *core.Event, match func(*core.Event) bool) *core.Event {
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
