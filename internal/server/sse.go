package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/types"
)

// clientBuffer is the number of undelivered events kept per SSE client.
// When it is full the oldest event is dropped.
const clientBuffer = 4

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteReady sends the first event of a stream
func (s *SSEWriter) WriteReady(clientID string) {
	s.WriteEvent("ready", map[string]string{"client_id": clientID}) //nolint:errcheck
}

// Event is one message fanned out to SSE clients
type Event struct {
	Name string
	Data map[string]string
}

// RenderFunc turns a document into an HTML fragment
type RenderFunc func(doc *types.Document) (string, error)

// Broker renders the document once per store notification and fans the
// result out to every connected client. Delivery never blocks the store:
// a client that falls behind loses its oldest pending events.
type Broker struct {
	mu      sync.Mutex
	clients map[uuid.UUID]chan Event
	closed  bool

	render      RenderFunc
	unsubscribe func()
	logger      *slog.Logger
}

// NewBroker subscribes a broker to store
func NewBroker(store *state.Store, render RenderFunc, logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Broker{
		clients: make(map[uuid.UUID]chan Event),
		render:  render,
		logger:  logger,
	}
	b.unsubscribe = store.Subscribe(b.onChange)
	return b
}

func (b *Broker) onChange(doc *types.Document) {
	if b.ClientCount() == 0 {
		return
	}

	ev := Event{Name: "render"}
	html, err := b.render(doc)
	if err != nil {
		b.logger.Error("failed to render preview", "error", err)
		ev = Event{Name: "error", Data: map[string]string{"error": "failed to render preview"}}
	} else {
		ev.Data = map[string]string{"html": html}
	}
	b.Publish(ev)
}

// Publish delivers ev to every client without blocking
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.clients {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Full: drop the oldest event. Only Publish sends, under b.mu, so
		// there is room after one receive.
		select {
		case <-ch:
			b.logger.Debug("dropped stale preview event", "client_id", id)
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a client. The returned cancel function removes it and
// closes its channel; calling it more than once is harmless.
func (b *Broker) Subscribe() (uuid.UUID, <-chan Event, func()) {
	id := uuid.New()
	ch := make(chan Event, clientBuffer)

	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.clients[id] = ch
	}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.clients[id]; ok {
				delete(b.clients, id)
				close(c)
			}
		})
	}
	return id, ch, cancel
}

// ClientCount returns the number of connected clients
func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close detaches the broker from the store and ends every client stream
func (b *Broker) Close() {
	b.unsubscribe()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.clients {
		delete(b.clients, id)
		close(ch)
	}
}
