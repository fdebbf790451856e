package core

import (
	"context"

	"github.com/rs/zerolog"
)

// session is the per-connection state the hub tracks once a connection has
// joined: who it is and which thread scope it is currently in. A connection
// is in at most one thread scope at a time.
type session struct {
	userID      string
	threadScope string
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

type scopedEvent struct {
	scopeID string
	event   *Event
}

// Hub routes inbound commands from connections to the chat service and fans
// resulting events out to broadcast scopes. All hub state is owned by the
// Run goroutine; transports and HTTP handlers talk to it through channels.
type Hub struct {
	svc *Service
	log zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	publish    chan scopedEvent

	clients  map[*Client]chan struct{}
	sessions map[*Client]*session
	scopes   map[string]*Scope
}

// NewHub creates a hub over the given service. A nil logger disables logging.
func NewHub(svc *Service, logger *zerolog.Logger) *Hub {
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Hub{
		svc:        svc,
		log:        lg,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		publish:    make(chan scopedEvent, 16),
		clients:    make(map[*Client]chan struct{}),
		sessions:   make(map[*Client]*session),
		scopes:     make(map[string]*Scope),
	}
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a connection, releasing its presence and scopes.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Publish broadcasts an event into a scope from outside the hub goroutine.
// Used by HTTP handlers that need to notify connected clients.
func (h *Hub) Publish(scopeID string, event *Event) {
	h.publish <- scopedEvent{scopeID: scopeID, event: event}
}

// Run processes hub traffic until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(ctx, client)
		case client := <-h.unregister:
			h.dropClient(client)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		case se := <-h.publish:
			if scope, ok := h.scopes[se.scopeID]; ok {
				scope.Broadcast(se.event)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) addClient(ctx context.Context, client *Client) {
	if _, exists := h.clients[client]; exists {
		return
	}
	stop := make(chan struct{})
	h.clients[client] = stop
	h.sessions[client] = &session{}

	// Pump the client's command channel into the hub loop.
	go func() {
		for {
			select {
			case cmd := <-client.Commands:
				select {
				case h.commands <- clientCommand{client: client, cmd: cmd}:
				case <-stop:
					return
				case <-ctx.Done():
					return
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (h *Hub) dropClient(client *Client) {
	stop, exists := h.clients[client]
	if !exists {
		return
	}
	close(stop)
	delete(h.clients, client)

	sess := h.sessions[client]
	delete(h.sessions, client)

	for id, scope := range h.scopes {
		if scope.RemoveClient(client) && scope.Empty() {
			delete(h.scopes, id)
		}
	}
	close(client.Events)

	if sess == nil || sess.userID == "" {
		return
	}
	if upd, offline := h.svc.Presence().Leave(sess.userID, client.ConnID); offline {
		h.log.Debug().Str("user_id", sess.userID).Msg("user went offline")
		h.broadcastAll(&Event{Kind: EventPresenceUpdate, Presence: upd})
	}
}

func (h *Hub) dispatch(client *Client, cmd *Command) {
	if _, exists := h.clients[client]; !exists {
		return
	}
	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(client, cmd)
	case CommandTyping:
		h.handleTyping(client, cmd)
	case CommandSendMessage:
		h.handleSend(client, cmd)
	case CommandDelivered:
		h.handleDelivered(cmd)
	case CommandRead:
		h.handleRead(cmd)
	}
}

func (h *Hub) handleJoin(client *Client, cmd *Command) {
	if cmd.UserID == "" {
		return
	}
	sess := h.sessions[client]

	if sess.userID != "" && sess.userID != cmd.UserID {
		// Re-join under another identity releases the old one first.
		h.scopeRemove(sess.userID, client)
		if upd, offline := h.svc.Presence().Leave(sess.userID, client.ConnID); offline {
			h.broadcastAll(&Event{Kind: EventPresenceUpdate, Presence: upd})
		}
	}
	sess.userID = cmd.UserID

	upd := h.svc.Presence().Join(cmd.UserID, client.ConnID)
	h.scopeAdd(cmd.UserID, client)

	if cmd.OtherID != "" {
		key := ScopeKey(cmd.UserID, cmd.OtherID)
		if sess.threadScope != "" && sess.threadScope != key {
			h.scopeRemove(sess.threadScope, client)
		}
		h.scopeAdd(key, client)
		sess.threadScope = key
	}

	h.log.Debug().Str("user_id", cmd.UserID).Str("conn_id", client.ConnID).
		Str("thread", sess.threadScope).Msg("client joined")

	// Presence goes out on every join so reconnecting clients refresh
	// everyone's roster, not only on the offline-to-online transition.
	h.broadcastAll(&Event{Kind: EventPresenceUpdate, Presence: upd})
}

func (h *Hub) handleTyping(client *Client, cmd *Command) {
	if cmd.Room == "" || cmd.From == "" {
		return
	}
	scope, ok := h.scopes[cmd.Room]
	if !ok {
		return
	}
	scope.BroadcastExcept(&Event{
		Kind:     EventTyping,
		Room:     cmd.Room,
		From:     cmd.From,
		IsTyping: cmd.IsTyping,
	}, client)
}

func (h *Hub) handleSend(client *Client, cmd *Command) {
	msg, err := h.svc.Store().Append(cmd.From, cmd.To, cmd.Text)
	if err != nil {
		coreErr, ok := err.(*CoreError)
		if !ok {
			coreErr = coreError(ErrCodeBadRequest, err.Error())
		}
		h.log.Debug().Str("tmp_id", cmd.TempID).Str("code", coreErr.Code).Msg("message rejected")
		h.sendTo(client, &Event{Kind: EventError, TempID: cmd.TempID, Error: coreErr})
		return
	}

	// Ack goes to the submitting connection only; the full message reaches
	// both participants exactly once through the shared thread scope.
	h.sendTo(client, &Event{Kind: EventMessageAck, TempID: cmd.TempID, Message: msg})

	if scope, ok := h.scopes[ScopeKey(msg.SenderID, msg.RecipientID)]; ok {
		scope.Broadcast(&Event{Kind: EventNewMessage, Message: msg})
	}
}

func (h *Hub) handleDelivered(cmd *Command) {
	if cmd.MessageID == "" || cmd.By == "" {
		return
	}
	msg, ok := h.svc.Store().MarkDelivered(cmd.MessageID, cmd.By)
	if !ok {
		// Late or duplicate ack for an unknown message: ignore.
		return
	}
	if scope, exists := h.scopes[msg.SenderID]; exists {
		scope.Broadcast(&Event{Kind: EventMessageDelivered, MessageID: msg.ID, By: cmd.By})
	}
}

func (h *Hub) handleRead(cmd *Command) {
	if cmd.MessageID == "" || cmd.By == "" {
		return
	}
	msg, ok := h.svc.Store().MarkRead(cmd.MessageID, cmd.By)
	if !ok {
		return
	}
	if scope, exists := h.scopes[msg.SenderID]; exists {
		scope.Broadcast(&Event{Kind: EventMessageRead, MessageID: msg.ID, By: cmd.By})
	}
}

func (h *Hub) scopeAdd(id string, client *Client) {
	scope, ok := h.scopes[id]
	if !ok {
		scope = NewScope(id)
		h.scopes[id] = scope
	}
	scope.AddClient(client)
}

func (h *Hub) scopeRemove(id string, client *Client) {
	scope, ok := h.scopes[id]
	if !ok {
		return
	}
	if scope.RemoveClient(client) && scope.Empty() {
		delete(h.scopes, id)
	}
}

func (h *Hub) broadcastAll(event *Event) {
	for client := range h.clients {
		h.sendTo(client, event)
	}
}

func (h *Hub) sendTo(client *Client, event *Event) {
	select {
	case client.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
