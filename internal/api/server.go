// Package api exposes a single dictionary over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/radix-dictionary/internal/dictionary"
)

// Server represents the HTTP API server
type Server struct {
	// mu serializes every call into dict, which is not safe for concurrent use
	mu     sync.Mutex
	dict   *dictionary.Dictionary
	server *http.Server
	logger zerolog.Logger
}

type definitionRequest struct {
	Definition string `json:"definition"`
}

type wordResponse struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

type sequenceResponse struct {
	Word     string   `json:"word"`
	Sequence string   `json:"sequence"`
	Segments []string `json:"segments"`
}

type countResponse struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

type wordsResponse struct {
	Prefix string   `json:"prefix"`
	Words  []string `json:"words"`
}

// NewServer creates a new API server for dict listening on addr
func NewServer(addr string, dict *dictionary.Dictionary, logger zerolog.Logger) *Server {
	s := &Server{
		dict:   dict,
		logger: logger,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.stats).Methods(http.MethodGet)
	r.HandleFunc("/compress", s.compress).Methods(http.MethodPost)

	r.HandleFunc("/count", s.countPrefix).Methods(http.MethodGet)
	r.HandleFunc("/count/{prefix}", s.countPrefix).Methods(http.MethodGet)

	r.HandleFunc("/words", s.listWords).Methods(http.MethodGet)
	r.HandleFunc("/words/{word}", s.putWord).Methods(http.MethodPut)
	r.HandleFunc("/words/{word}", s.deleteWord).Methods(http.MethodDelete)
	r.HandleFunc("/words/{word}", s.getWord).Methods(http.MethodGet)
	r.HandleFunc("/words/{word}/sequence", s.getSequence).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting dictionary server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down dictionary server")
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

// Helper functions for HTTP responses
func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, map[string]string{"error": err.Error()})
}

// respondMutation maps a dictionary mutation error onto a status code
func (s *Server) respondMutation(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, dictionary.ErrFrozen):
		s.respondError(w, http.StatusConflict, err)
	case errors.Is(err, dictionary.ErrInvalidKey):
		s.respondError(w, http.StatusBadRequest, err)
	default:
		s.logger.Error().Err(err).Msg("Mutation failed")
		s.respondError(w, http.StatusInternalServerError, err)
	}
}

// HTTP Handlers
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// stats handles GET /stats
func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	st := s.dict.Stats()
	s.mu.Unlock()

	s.respond(w, http.StatusOK, st)
}

// compress handles POST /compress
func (s *Server) compress(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	err := s.dict.Compress()
	st := s.dict.Stats()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("Compression failed")
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respond(w, http.StatusOK, st)
}

// countPrefix handles GET /count and GET /count/{prefix}
func (s *Server) countPrefix(w http.ResponseWriter, r *http.Request) {
	prefix := mux.Vars(r)["prefix"]

	s.mu.Lock()
	count := s.dict.CountPrefix(prefix)
	s.mu.Unlock()

	s.respond(w, http.StatusOK, countResponse{Prefix: prefix, Count: count})
}

// listWords handles GET /words?prefix=p
func (s *Server) listWords(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	s.mu.Lock()
	words := s.dict.Keys(prefix)
	s.mu.Unlock()

	s.respond(w, http.StatusOK, wordsResponse{Prefix: prefix, Words: words})
}

// putWord handles PUT /words/{word}
func (s *Server) putWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	var req definitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	s.mu.Lock()
	err := s.dict.Add(word, req.Definition)
	s.mu.Unlock()

	s.respondMutation(w, err)
}

// deleteWord handles DELETE /words/{word}
func (s *Server) deleteWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	s.mu.Lock()
	err := s.dict.Remove(word)
	s.mu.Unlock()

	s.respondMutation(w, err)
}

// getWord handles GET /words/{word}
func (s *Server) getWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	s.mu.Lock()
	def, ok := s.dict.Definition(word)
	s.mu.Unlock()

	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("word %q not found", word))
		return
	}
	s.respond(w, http.StatusOK, wordResponse{Word: word, Definition: def})
}

// getSequence handles GET /words/{word}/sequence
func (s *Server) getSequence(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	s.mu.Lock()
	seq, ok := s.dict.Sequence(word)
	s.mu.Unlock()

	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("no sequence for %q", word))
		return
	}
	s.respond(w, http.StatusOK, sequenceResponse{
		Word:     word,
		Sequence: seq,
		Segments: strings.Split(seq, dictionary.SegmentSeparator),
	})
}
