package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/version"
)

// healthStatus is the /healthz response body
type healthStatus struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	Configs        int    `json:"configs"`
	Languages      int    `json:"languages"`
	ActiveLanguage string `json:"active_language,omitempty"`
	Connections    int    `json:"connections"`
}

// handleHealthz reports daemon liveness and registry entry counts
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	status := healthStatus{
		Status:      "ok",
		Version:     version.Version,
		Configs:     len(s.configs.Names()),
		Languages:   len(s.languages.Names()),
		Connections: s.GetActiveConnections(),
	}
	if active, ok := s.languages.Active(); ok {
		status.ActiveLanguage = active
	}

	writeJSON(w, http.StatusOK, status)
}

// handleList mirrors the list protocol operation for plain HTTP callers
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	writeJSON(w, http.StatusOK, s.handler.Inventory())
}

// writeJSON writes v as a JSON response body
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logging.Error("Failed to encode HTTP response", zap.Error(err))
	}
}
