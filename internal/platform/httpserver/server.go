package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	moderationservice "vidstream/contexts/moderation-safety/moderation-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "vidstream/internal/platform/httpserver/docs"
)

const maxRequestBodyBytes = 1 << 20

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	moderation moderationservice.Module
	metrics    http.Handler
	ready      func(context.Context) error
	httpServer *http.Server
}

type Option func(*Server)

// WithMetricsHandler mounts a scrape endpoint at /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(s *Server) {
		s.metrics = handler
	}
}

// WithReadinessCheck makes /healthz report the result of check.
func WithReadinessCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.ready = check
	}
}

func New(
	moderation moderationservice.Module,
	logger *slog.Logger,
	addr string,
	opts ...Option,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		moderation: moderation,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}

	s.mux.HandleFunc("POST /api/moderation/v1/flags", s.handleSubmitFlag)
	s.mux.HandleFunc("GET /api/moderation/v1/flags", s.handleListFlags)
	s.mux.HandleFunc("POST /api/moderation/v1/flags/{flag_id}/review", s.handleStartFlagReview)
	s.mux.HandleFunc("POST /api/moderation/v1/flags/{flag_id}/decision", s.handleDecideFlag)

	s.mux.HandleFunc("GET /api/moderation/v1/claims", s.handleListClaims)
	s.mux.HandleFunc("POST /api/moderation/v1/claims/{claim_id}/decision", s.handleDecideClaim)
	s.mux.HandleFunc("POST /api/moderation/v1/claims/{claim_id}/block", s.handleBlockClaimedVideo)
	s.mux.HandleFunc("POST /api/moderation/v1/claims/{claim_id}/counter-notice", s.handleCounterNotice)
	s.mux.HandleFunc("POST /api/moderation/v1/claims/{claim_id}/appeal", s.handleAppeal)

	s.mux.HandleFunc("GET /api/moderation/v1/strikes", s.handleListStrikes)
	s.mux.HandleFunc("POST /api/moderation/v1/strikes", s.handleIssueStrike)
	s.mux.HandleFunc("PATCH /api/moderation/v1/strikes/{strike_id}", s.handleUpdateStrike)
	s.mux.HandleFunc("DELETE /api/moderation/v1/strikes/{strike_id}", s.handlePurgeStrike)

	s.mux.HandleFunc("GET /api/moderation/v1/channels/{channel_id}/standing", s.handleChannelStanding)
	s.mux.HandleFunc("GET /api/moderation/v1/audit-logs", s.handleListAuditLogs)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed",
				"event", "http_readiness_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a bounded JSON body. An empty body decodes to the zero
// value so endpoints with only optional fields accept bare POSTs.
func (s *Server) decodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	dst any,
	writeErr func(w http.ResponseWriter, status int, code string, message string),
) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body is too large")
			return false
		}
		writeErr(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	if decoder.More() {
		writeErr(w, http.StatusBadRequest, "invalid_json", "request body must contain a single JSON object")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func headerValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.Header.Get(name))
}
