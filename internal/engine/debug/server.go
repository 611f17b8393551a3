// Package debug exposes engine state over a websocket for a debug UI:
// periodic stats snapshots plus the chunk event feed.
package debug

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
)

// Message is one frame on the debug socket.
type Message struct {
	Type  string `json:"type"` // "stats" or "event"
	Stats any    `json:"stats,omitempty"`
	Event *Event `json:"event,omitempty"`
}

// Event mirrors a chunk event in JSON form.
type Event struct {
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
}

func eventKind(k world.EventKind) string {
	switch k {
	case world.EventLoaded:
		return "loaded"
	case world.EventUnloaded:
		return "unloaded"
	case world.EventUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Server serves the debug stream on /ws. stats is polled per interval;
// events arrive from an engine subscription.
type Server struct {
	addr     string
	stats    func() any
	events   <-chan world.Event
	interval time.Duration
	logger   *slog.Logger

	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New creates a debug server. interval defaults to one second.
//
// All connections share the one events channel, so each chunk event
// reaches exactly one of them. Run a single debug client, or give each
// server its own engine subscription.
func New(addr string, stats func() any, events <-chan world.Event, interval time.Duration, logger *slog.Logger) *Server {
	if interval <= 0 {
		interval = time.Second
	}
	return &Server{
		addr:     addr,
		stats:    stats,
		events:   events,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler serving /ws and /stats.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{Addr: s.addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutCtx)
	}()

	s.logger.Info("debug stream listening", "addr", s.addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.stats()); err != nil {
		s.logger.Warn("encode stats", "err", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Reads are discarded; the read loop only notices the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(Message{Type: "stats", Stats: s.stats()}); err != nil {
				return
			}
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			msg := Message{Type: "event", Event: &Event{
				Kind: eventKind(ev.Kind),
				X:    ev.Coord.X,
				Y:    ev.Coord.Y,
				Z:    ev.Coord.Z,
			}}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
