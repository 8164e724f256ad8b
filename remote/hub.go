package remote

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/session"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

// Publisher accepts actions from remote players. *control.Bus implements it.
type Publisher interface {
	Publish(a tetris.Action) int
}

// Message is what the hub sends to websocket clients.
type Message struct {
	Type     string           `json:"type"`
	Session  string           `json:"session,omitempty"`
	Snapshot *tetris.Snapshot `json:"snapshot,omitempty"`
	Action   *tetris.Action   `json:"action,omitempty"`
	Error    string           `json:"error,omitempty"`
}

const (
	MessageSnapshot = "snapshot"
	MessageAccepted = "accepted"
	MessageError    = "error"
)

// Hub fans snapshots out to every connected client and forwards their
// actions to the bus. It is a session observer.
type Hub struct {
	session.NopObserver

	bus Publisher
	log zerolog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	closed  bool
}

var _ session.FrameObserver = (*Hub)(nil)

func NewHub(bus Publisher, log zerolog.Logger) *Hub {
	return &Hub{
		bus:     bus,
		log:     log.With().Str("component", "hub").Logger(),
		clients: make(map[*client]struct{}),
	}
}

// Frame broadcasts snap to every client and keeps it for clients that
// connect later.
func (h *Hub) Frame(id uuid.UUID, snap tetris.Snapshot) {
	h.Broadcast(Message{Type: MessageSnapshot, Session: id.String(), Snapshot: &snap})
}

// Broadcast sends m to every client. Clients whose send buffer is full are
// disconnected.
func (h *Hub) Broadcast(m Message) {
	msg, err := json.Marshal(m)
	if err != nil {
		h.log.Error().Err(err).Msg("encode broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if m.Type == MessageSnapshot {
		h.last = msg
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Str("remote", c.remote).Msg("client too slow, dropping")
			h.removeLocked(c)
		}
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.send)
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	h.log.Info().Str("remote", c.remote).Int("clients", len(h.clients)).Msg("client connected")
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.removeLocked(c)
		h.log.Info().Str("remote", c.remote).Int("clients", len(h.clients)).Msg("client disconnected")
	}
}

func (h *Hub) removeLocked(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// reply sends m to c alone, if c is still connected.
func (h *Hub) reply(c *client, m Message) {
	msg, err := json.Marshal(m)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// handle decodes one inbound message and publishes it. Only controllable
// actions are forwarded.
func (h *Hub) handle(c *client, raw []byte) {
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		h.reply(c, Message{Type: MessageError, Error: err.Error()})
		return
	}
	if in.Kind == nil {
		h.reply(c, Message{Type: MessageError, Error: "missing action"})
		return
	}
	a := tetris.Action{Kind: *in.Kind, Intensity: in.Intensity}
	if !a.Kind.Controllable() {
		h.reply(c, Message{Type: MessageError, Error: "action " + a.Kind.String() + " is not accepted from clients"})
		return
	}

	h.bus.Publish(a)
	h.reply(c, Message{Type: MessageAccepted, Action: &a})
}

// inbound is a client message. Kind is a pointer so an absent action is
// not read as the zero kind.
type inbound struct {
	Kind      *tetris.ActionKind `json:"action"`
	Intensity int                `json:"intensity"`
}
