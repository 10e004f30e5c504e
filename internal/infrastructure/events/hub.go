package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/corvidlabs/reviewdesk/internal/infrastructure/config"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/logger"
)

// Event names pushed to project subscribers
const (
	// EventVersionsUpdated tells subscribers that the project's version list
	// changed and should be re-fetched.
	EventVersionsUpdated = "versions.updated"
)

// Event is a message broadcast to project subscribers
type Event struct {
	Type      string    `json:"type"`
	ProjectID uuid.UUID `json:"project_id"`
	At        time.Time `json:"at"`
}

// client is a single WebSocket subscriber
type client struct {
	conn      *websocket.Conn
	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func (c *client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Hub fans out project events to WebSocket subscribers. Clients that cannot
// keep up are dropped rather than blocking the broadcaster.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[uuid.UUID]map[*client]struct{}
	cfg     *config.EventsConfig
	log     zerolog.Logger
	closing bool
}

// NewHub creates a new event hub
func NewHub(cfg *config.EventsConfig) *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*client]struct{}),
		cfg:   cfg,
		log:   logger.NewLogger("events"),
	}
}

// Subscribe registers conn for the project's events and services it until the
// connection drops or the hub shuts down. Blocks for the connection lifetime.
func (h *Hub) Subscribe(projectID uuid.UUID, conn *websocket.Conn) {
	c := &client{
		conn: conn,
		send: make(chan Event, h.cfg.GetSendBufferSize()),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closing {
		h.mu.Unlock()
		conn.Close()
		return
	}
	room, ok := h.rooms[projectID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[projectID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("project_id", projectID.String()).Msg("Subscriber connected")

	go h.readPump(c)
	h.writePump(c)

	h.remove(projectID, c)
	h.log.Debug().Str("project_id", projectID.String()).Msg("Subscriber disconnected")
}

// Publish broadcasts an event to all subscribers of the project
func (h *Hub) Publish(projectID uuid.UUID, eventType string) {
	ev := Event{
		Type:      eventType,
		ProjectID: projectID,
		At:        time.Now(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[projectID] {
		select {
		case c.send <- ev:
		default:
			// Slow consumer; close and let the pumps clean up.
			c.shutdown()
		}
	}
}

// NotifyVersionsUpdated is the refresh signal sent after every successful
// version mutation.
func (h *Hub) NotifyVersionsUpdated(projectID uuid.UUID) {
	h.Publish(projectID, EventVersionsUpdated)
}

// Close disconnects all subscribers
func (h *Hub) Close() {
	h.mu.Lock()
	h.closing = true
	for _, room := range h.rooms {
		for c := range room {
			c.conn.Close()
		}
	}
	h.rooms = make(map[uuid.UUID]map[*client]struct{})
	h.mu.Unlock()
}

func (h *Hub) remove(projectID uuid.UUID, c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[projectID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, projectID)
		}
	}
	h.mu.Unlock()
	c.conn.Close()
}

// readPump drains inbound frames so pings/pongs and close frames are
// processed; subscribers never send application data.
func (h *Hub) readPump(c *client) {
	defer c.shutdown()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.cfg.GetPingInterval())
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.GetWriteTimeout()))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.GetWriteTimeout()))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
