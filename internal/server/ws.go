// Package server provides the HTTP server for the swing analysis service.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rohanv/swingsight/internal/store"
	"github.com/rohanv/swingsight/internal/swing"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// ReplayHandler streams a stored analysis frame by frame over a WebSocket,
// paced by the original frame timestamps so a client can render the swing
// with phase labels in real time.
type ReplayHandler struct {
	store *store.Store
	log   *slog.Logger
}

// NewReplayHandler creates a new ReplayHandler with the given store.
func NewReplayHandler(s *store.Store, log *slog.Logger) *ReplayHandler {
	return &ReplayHandler{store: s, log: log}
}

// replayMessage is one frame of the replay stream.
type replayMessage struct {
	FrameIndex int                `json:"frame_index"`
	Timestamp  float64            `json:"timestamp"`
	Phase      swing.Phase        `json:"phase"`
	Confidence float64            `json:"confidence"`
	Metrics    swing.FrameMetrics `json:"metrics"`
	Done       bool               `json:"done,omitempty"`
}

// ServeHTTP handles WebSocket upgrade requests for
// /api/analyses/{id}/replay.
func (h *ReplayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/analyses/")
	id = strings.TrimSuffix(id, "/replay")

	a, err := h.store.Analyses().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Analysis not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get analysis", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.stream(conn, a.Result.PhaseFrames)
}

// stream writes the phase frames to the connection, sleeping the original
// inter-frame interval between writes, then a final done marker.
func (h *ReplayHandler) stream(conn *websocket.Conn, frames []swing.PhaseFrame) {
	for i := range frames {
		msg, _ := json.Marshal(replayMessage{
			FrameIndex: frames[i].FrameIndex,
			Timestamp:  frames[i].Timestamp,
			Phase:      frames[i].Phase,
			Confidence: frames[i].Confidence,
			Metrics:    frames[i].Metrics,
		})
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
		if i+1 < len(frames) {
			dt := frames[i+1].Timestamp - frames[i].Timestamp
			if dt > 0 {
				time.Sleep(time.Duration(dt * float64(time.Second)))
			}
		}
	}

	done, _ := json.Marshal(replayMessage{Done: true})
	conn.WriteMessage(websocket.TextMessage, done)
}
