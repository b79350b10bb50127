// Command historyd runs a standalone collaboration relay plus a thin HTTP
// surface for operating it: health, per-session undo/redo depth, and the
// WebSocket upgrade endpoint (SPEC_FULL.md §4.K).
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cozy/prosemirror-history/collab"
	"github.com/cozy/prosemirror-history/history"
)

// sessionRegistry hands out a lazily-created history.Session per id. It
// is the process's entire notion of "who is editing what" — there is no
// persistence across restarts (SPEC_FULL.md's Non-goals).
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*history.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*history.Session)}
}

func (r *sessionRegistry) get(id string) *history.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = history.New(history.DefaultConfig())
		r.sessions[id] = s
	}
	return s
}

type depthResponse struct {
	UndoDepth int `json:"undoDepth"`
	RedoDepth int `json:"redoDepth"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	registry := newSessionRegistry()
	relay := collab.NewRelay(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/sessions/{id}/depth", func(w http.ResponseWriter, req *http.Request) {
		sess := registry.get(chi.URLParam(req, "id"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(depthResponse{
			UndoDepth: sess.UndoDepth(),
			RedoDepth: sess.RedoDepth(),
		})
	})

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		collab.ServeWS(relay, w, req)
	})

	addr := ":8080"
	if v := os.Getenv("HISTORYD_ADDR"); v != "" {
		addr = v
	}
	logger.Info("historyd listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("historyd stopped", "err", err)
		os.Exit(1)
	}
}
