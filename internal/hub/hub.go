// Package hub streams catalog notifications to browsers over Server-Sent
// Events.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"venuestore/internal/logger"
)

// KeepAlive is how often idle connections get a comment line.
const KeepAlive = 30 * time.Second

// message is one broadcast, pre-rendered once for every client
type message struct {
	event string
	frame []byte
}

// Client represents a connected SSE client
type Client struct {
	id     string
	events chan message
	types  map[string]bool // empty means every type
}

func (c *Client) wants(event string) bool {
	return len(c.types) == 0 || c.types[event]
}

// Hub manages SSE client connections
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	seq        atomic.Int64
	log        *logger.Logger
}

// New creates a new Hub
func New(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		log:        log.With("component", "hub"),
	}
}

// Run starts the hub's event loop and blocks until ctx is cancelled, at
// which point every client stream is closed.
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.events)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("SSE client connected", "client_id", client.id, "total", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.events)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("SSE client disconnected", "client_id", client.id, "total", total)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.wants(msg.event) {
					continue
				}
				select {
				case client.events <- msg:
				default:
					h.log.Warn("SSE client is slow, skipping message", "client_id", client.id, "event", msg.event)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for every interested client. It never blocks;
// when the queue is full the event is dropped.
func (h *Hub) Broadcast(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal event", "event", event, "error", err)
		return
	}
	id := h.seq.Add(1)
	frame := fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", id, event, data)

	select {
	case h.broadcast <- message{event: event, frame: []byte(frame)}:
	default:
		h.log.Warn("broadcast channel full, dropping event", "event", event)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles SSE connections. The optional "types" query parameter is
// a comma-separated list of event names to receive.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	client := &Client{
		id:     uuid.NewString(),
		events: make(chan message, 64),
		types:  parseTypes(r.URL.Query().Get("types")),
	}

	select {
	case h.register <- client:
	case <-h.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, ": connected %s\n\n", client.id)
	flusher.Flush()

	ticker := time.NewTicker(KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.events:
			if !ok {
				return
			}
			if _, err := w.Write(msg.frame); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func parseTypes(raw string) map[string]bool {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	types := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types[t] = true
		}
	}
	return types
}
