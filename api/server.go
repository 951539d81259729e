package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"folio/document"
	"folio/pipeline"
)

// Runner executes one transcription run for a resolved source location.
type Runner interface {
	Run(ctx context.Context, source string) (pipeline.Summary, error)
}

// Server is the thin HTTP shell over the pipeline. It only resolves a source
// path from the request and reports the run outcome; all policy lives in the
// pipeline.
type Server struct {
	runner Runner
	port   int
	logger *zap.Logger
}

// NewServer creates a new API server.
func NewServer(runner Runner, port int, logger *zap.Logger) *Server {
	return &Server{
		runner: runner,
		port:   port,
		logger: logger,
	}
}

type transcribeRequest struct {
	Path string `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Start starts the API server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/transcribe", s.transcribeHandler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	addr := ":" + strconv.Itoa(s.port)
	s.logger.Info("Starting API server", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}

func (s *Server) transcribeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Path) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing path parameter"})
		return
	}

	sum, err := s.runner.Run(r.Context(), req.Path)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, document.ErrUnreadable) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("Transcription run failed",
			zap.String("file", req.Path),
			zap.Error(err))
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
