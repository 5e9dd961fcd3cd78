package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

const (
	maxBodyBytes    = 1 << 20
	maxHistoryLimit = 100
)

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type analyzeRequest struct {
	RepoURL string `json:"repoUrl"`
	Branch  string `json:"branch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.RepoURL) == "" {
		writeError(w, http.StatusBadRequest, "repoUrl is required")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.RepoURL, strings.TrimSpace(req.Branch))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("analysis failed", "repo", req.RepoURL, "error", err)
			writeError(w, status, "analysis failed")
			return
		}
		writeError(w, status, errors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	results := []*pipeline.Result{}
	if s.history != nil {
		got, err := s.history.Recent(r.Context(), limit)
		if err != nil {
			s.logger.Error("history lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "history unavailable")
			return
		}
		results = append(results, got...)
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: results})
}

// statusFor maps the analysis error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidURL, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeManifestNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, response{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
