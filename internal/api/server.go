package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"greenmcp/internal/config"
	"greenmcp/internal/tools"
	"greenmcp/internal/util"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cfg   config.Config
	tools *tools.Toolset
	mcp   http.Handler
	db    Pinger
}

func NewServer(cfg config.Config, ts *tools.Toolset, mcpHandler http.Handler, db Pinger) *Server {
	return &Server{cfg: cfg, tools: ts, mcp: mcpHandler, db: db}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/documents", s.handleDocuments)
	mux.HandleFunc("/documents/search", s.handleDocumentSearch)
	if s.mcp != nil {
		path := s.cfg.MCPPath
		if path == "" {
			path = "/mcp"
		}
		mux.Handle(path, s.mcp)
	}
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("connect postgres: %w", err))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type searchRequest struct {
	Query    string `json:"query"`
	Filename string `json:"filename"`
	Limit    *int   `json:"limit"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("query is required"))
		return
	}
	results, err := s.tools.SearchChunks(r.Context(), req.Query, req.Limit)
	if err != nil {
		log.Printf("search failed limit=%d err=%v", tools.EffectiveLimit(req.Limit), err)
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}

func (s *Server) handleDocumentSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" || strings.TrimSpace(req.Filename) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("filename and query are required"))
		return
	}
	results, err := s.tools.SearchWithinDocument(r.Context(), req.Filename, req.Query, req.Limit)
	if err != nil {
		log.Printf("document search failed filename=%q err=%v", req.Filename, err)
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	names, err := s.tools.ListDocuments(r.Context())
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": names, "count": len(names)})
}

func statusFor(err error) int {
	if errors.Is(err, util.ErrEmbedderUnavailable) || errors.Is(err, util.ErrDimensionMismatch) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status == http.StatusBadGateway:
		if errors.Is(err, util.ErrDimensionMismatch) {
			return apiError{Code: "GM-EMB-5021", Message: "Embedding model returned vectors of the wrong dimension."}
		}
		return apiError{Code: "GM-EMB-5020", Message: "Embedding provider unavailable. Retry shortly."}
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{Code: "GM-DB-5001", Message: "Database schema is not initialized. Restart the server to create it."}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{Code: "GM-DB-5002", Message: "Database connection is unavailable. Check local services and retry."}
		default:
			return apiError{Code: "GM-API-5000", Message: "Internal server error. Please retry or check service logs."}
		}
	case status == http.StatusMethodNotAllowed:
		return apiError{Code: "GM-API-4005", Message: "This endpoint does not support the requested method."}
	case status == http.StatusBadRequest:
		msg := "Invalid request. Check inputs and retry."
		switch {
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "filename and query are required"):
			msg = "Both filename and query are required."
		case strings.Contains(raw, "query is required"):
			msg = "A search query is required."
		}
		return apiError{Code: "GM-API-4001", Message: msg}
	}
	return apiError{Code: "GM-API-4000", Message: "Request failed."}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Mcp-Session-Id")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
