package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/forkcast/internal/common/logger"
)

type chatRequest struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleChat processes one user turn. An empty or whitespace message is
// still a valid turn: it classifies as generic and both channels may
// legitimately come back empty.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	turnID := uuid.NewString()
	start := time.Now()
	logger.Infof("chat turn %s: message length %d", turnID, len(req.Message))

	resp := s.bot.Process(r.Context(), req.Message)

	logger.Infof("chat turn %s: done in %s (reddit=%t web=%t)",
		turnID, time.Since(start).Round(time.Millisecond),
		resp.Sources.Reddit != "", resp.Sources.Web != "")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encode response: %v", err)
	}
}
