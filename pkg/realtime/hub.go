package realtime

import (
	"log"
	"sync"
)

const sendBuffer = 32

// Event is the wire envelope pushed to connected clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Conn is the slice of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Client is one registered realtime connection.
type Client struct {
	conn Conn
	send chan Event
	once sync.Once
}

// Hub is the process-wide registry of realtime connections. Broadcast is
// fire-and-forget: there is no acknowledgment and a client whose send buffer
// is full simply misses the event.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds a connection to the fan-out set and starts its write pump.
func (h *Hub) Register(conn Conn) *Client {
	cl := &Client{conn: conn, send: make(chan Event, sendBuffer)}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	go cl.writePump(h)
	return cl
}

// Unregister removes a connection from the fan-out set and stops its pump.
// The send channel is closed under the registry lock so Broadcast can never
// write to a closed channel.
func (h *Hub) Unregister(cl *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		cl.once.Do(func() { close(cl.send) })
	}
}

// Broadcast queues an event for every connected client, including the
// originator when it is itself connected. Enqueueing is non-blocking.
func (h *Hub) Broadcast(event string, data any) {
	ev := Event{Event: event, Data: data}
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- ev:
		default:
			// slow consumer, drop
		}
	}
}

// NotifyConversation pushes a new direct message to connected clients.
// Per-conversation routing is not implemented yet; for now the event goes to
// everyone and clients filter on conversationId.
func (h *Hub) NotifyConversation(conversationID uint, data any) {
	h.Broadcast("dm:new", data)
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (cl *Client) writePump(h *Hub) {
	for ev := range cl.send {
		if err := cl.conn.WriteJSON(ev); err != nil {
			log.Printf("[realtime] write failed, dropping client: %v", err)
			h.Unregister(cl)
			break
		}
	}
	_ = cl.conn.Close()
}
