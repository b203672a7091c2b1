package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/galcheat/galcheat/pkg/survey"
	"github.com/galcheat/galcheat/server/internal/api"
)

// Connection limits. pingEvery stays below readWait so a live peer always
// answers before its read deadline expires.
const (
	writeWait   = 10 * time.Second
	readWait    = time.Minute
	pingEvery   = 50 * time.Second
	queueDepth  = 16
	maxInbound  = 512
	catalogType = "catalog"
)

var upgrader = websocket.Upgrader{
	WriteBufferSize: 4096,
	CheckOrigin:     anyOrigin,
}

// anyOrigin accepts cross-origin upgrades; restrict origins at the proxy.
func anyOrigin(*http.Request) bool { return true }

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string              `json:"event"`
	Data  []api.SurveySummary `json:"data"`
}

// Hub pushes the survey catalog to subscribers on connect and after every
// Notify.
type Hub struct {
	reg     *survey.Registry
	pending chan struct{}

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// subscriber is one upgraded connection and its outgoing queue. The queue is
// closed exactly once, by the hub, when the subscriber is dropped.
type subscriber struct {
	conn  *websocket.Conn
	queue chan []byte
}

// New creates a Hub that reads surveys from reg.
func New(reg *survey.Registry) *Hub {
	return &Hub{
		reg:     reg,
		pending: make(chan struct{}, 1),
		subs:    make(map[*subscriber]struct{}),
	}
}

// Notify schedules a broadcast of the current catalog. Calls made while a
// broadcast is pending are coalesced.
func (h *Hub) Notify() {
	select {
	case h.pending <- struct{}{}:
	default:
	}
}

// Run delivers pending broadcasts until ctx is cancelled, then drops every
// subscriber.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.dropAll()
			return
		case <-h.pending:
			h.publish()
		}
	}
}

// ServeHTTP upgrades the request, queues the current catalog and serves the
// connection until the peer goes away or the hub drops it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		slog.Debug("ws: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	sub := &subscriber{conn: conn, queue: make(chan []byte, queueDepth)}
	if frame, err := h.catalogFrame(); err == nil {
		sub.queue <- frame
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	defer h.drop(sub)

	go sub.writeLoop()
	sub.readLoop()
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) catalogFrame() ([]byte, error) {
	return json.Marshal(Message{Event: catalogType, Data: api.Summaries(h.reg)})
}

// publish queues the current catalog for every subscriber. A subscriber
// whose queue is full is dropped.
func (h *Hub) publish() {
	frame, err := h.catalogFrame()
	if err != nil {
		slog.Error("ws: encode catalog", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.queue <- frame:
		default:
			slog.Warn("ws: dropping slow subscriber", "remote", sub.conn.RemoteAddr())
			h.dropLocked(sub)
		}
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	h.dropLocked(sub)
	h.mu.Unlock()
}

func (h *Hub) dropLocked(sub *subscriber) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.queue)
}

func (h *Hub) dropAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		h.dropLocked(sub)
	}
}

// writeLoop sends queued frames and keepalive pings. It sends a close frame
// and exits once the queue is closed or a write fails.
func (s *subscriber) writeLoop() {
	keepalive := time.NewTicker(pingEvery)
	defer keepalive.Stop()
	defer s.conn.Close()

	for {
		var (
			kind    int
			payload []byte
		)
		select {
		case frame, open := <-s.queue:
			if !open {
				_ = s.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			kind, payload = websocket.TextMessage, frame
		case <-keepalive.C:
			kind = websocket.PingMessage
		}
		if err := s.write(kind, payload); err != nil {
			return
		}
	}
}

func (s *subscriber) write(kind int, payload []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(kind, payload)
}

// readLoop discards inbound frames so pongs and close frames are processed.
// It returns when the connection fails or its read deadline passes.
func (s *subscriber) readLoop() {
	defer s.conn.Close()

	extend := func(string) error { return s.conn.SetReadDeadline(time.Now().Add(readWait)) }
	s.conn.SetReadLimit(maxInbound)
	if err := extend(""); err != nil {
		return
	}
	s.conn.SetPongHandler(extend)

	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			return
		}
	}
}
