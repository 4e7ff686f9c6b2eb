package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

const maxEmailBytes = 1 << 20 // 1 MiB

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("POST /v1/parse", s.handleParse)
}

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status      string   `json:"status"`
	Pipeline    string   `json:"pipeline,omitempty"`
	Recognizers []string `json:"recognizers,omitempty"`
}

// ParseRequest is the JSON body accepted by the parse endpoint.
type ParseRequest struct {
	Email string `json:"email"`
}

// ErrorResponse is the JSON body for request failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealth returns basic server health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleReady reports whether a pipeline is available to serve parses and
// which entity recognizers it carries.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	p := s.Pipeline()
	if p == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "degraded",
			Pipeline: "not_initialized",
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Pipeline:    "ok",
		Recognizers: p.Recognizers(),
	})
}

// handleParse parses one email body. It accepts either a JSON object with an
// "email" field or raw text.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	email, err := readEmail(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(email) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "empty email body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	res := s.Pipeline().Parse(ctx, email)
	writeJSON(w, http.StatusOK, res)
}

// readEmail extracts the email text from the request body.
func readEmail(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEmailBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxEmailBytes {
		return "", errEmailTooLarge
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req ParseRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", err
		}
		return req.Email, nil
	}
	return string(body), nil
}

var errEmailTooLarge = errors.New("email body exceeds 1 MiB")

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
