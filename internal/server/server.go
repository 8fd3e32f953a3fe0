package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dirview/dirview/internal/browse"
	"github.com/dirview/dirview/internal/config"
	"github.com/dirview/dirview/internal/listing"
	"github.com/dirview/dirview/internal/logging"
	"github.com/dirview/dirview/internal/normalize"
	"github.com/dirview/dirview/internal/observability"
	"github.com/dirview/dirview/internal/ratelimit"
)

const requestIDHeader = "X-Request-ID"

// Server exposes listing processing and path utilities over HTTP.
type Server struct {
	mux          *http.ServeMux
	sort         listing.SortConfig
	normalizer   normalize.Normalizer
	maxBodyBytes int64

	limiter  *ratelimit.Limiter
	eventLog *logging.EventLogger
	metrics  *observability.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	s := &Server{
		mux:          http.NewServeMux(),
		sort:         cfg.SortConfig(),
		normalizer:   cfg.Normalizer(),
		maxBodyBytes: cfg.Server.MaxBodyBytes,
		logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
	}
	if cfg.Server.RateLimit.Enabled {
		s.limiter = ratelimit.NewLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
	}

	s.mux.HandleFunc("POST /v1/listing", s.handleListing)
	s.mux.HandleFunc("GET /v1/path/normalize", s.handleNormalize)
	s.mux.HandleFunc("GET /v1/path/base", s.handleBase)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return s, nil
}

func (s *Server) SetEventLogger(logger *logging.EventLogger) {
	s.eventLog = logger
}

func (s *Server) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, requestID)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	endpoint := endpointLabel(r.URL.Path)

	if !s.limiter.Allow(clientIP(r), s.now()) {
		s.metrics.ObserveRateLimited()
		http.Error(rec, "rate limit exceeded", http.StatusTooManyRequests)
		s.metrics.ObserveRequest(endpoint, rec.status)
		return
	}

	s.mux.ServeHTTP(rec, r)
	s.metrics.ObserveRequest(endpoint, rec.status)
	s.logger.Debug("request served",
		slog.String("request_id", requestID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", rec.status))
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	event := logging.Event{
		Timestamp: start.UTC(),
		RequestID: w.Header().Get(requestIDHeader),
		ClientIP:  clientIP(r),
		Source:    "api",
	}

	cfg, err := s.sortFromQuery(r)
	if err != nil {
		s.fail(w, event, start, http.StatusBadRequest, err)
		return
	}

	format, err := browse.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, event, start, http.StatusBadRequest, err)
		return
	}
	event.Format = string(format)

	if r.ContentLength > s.maxBodyBytes {
		s.fail(w, event, start, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	entries, err := browse.Decode(body, format)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(w, event, start, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return
		}
		s.fail(w, event, start, http.StatusBadRequest, err)
		return
	}

	res := browse.Process(entries, cfg, s.normalizer)
	res.Annotate(&event)
	event.StatusCode = http.StatusOK
	s.record(event, start)
	s.logger.Debug("listing processed",
		slog.String("request_id", event.RequestID),
		slog.String("path", res.Path),
		slog.String("inference", string(res.Inference)),
		slog.Int("entries", event.Entries),
		slog.Bool("server_order_differs", cfg.NeedsSort()))

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	raw, ok := r.URL.Query()["path"]
	if !ok {
		http.Error(w, "path query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": s.normalizer.Normalize(raw[0])})
}

func (s *Server) handleBase(w http.ResponseWriter, r *http.Request) {
	raw, ok := r.URL.Query()["path"]
	if !ok {
		http.Error(w, "path query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": normalize.BaseName(raw[0])})
}

// sortFromQuery overlays query parameters on the configured sort.
func (s *Server) sortFromQuery(r *http.Request) (listing.SortConfig, error) {
	cfg := s.sort
	q := r.URL.Query()

	if q.Has("sort") {
		criteria, err := listing.ParseCriteria(q.Get("sort"))
		if err != nil {
			return cfg, err
		}
		cfg.Criteria = criteria
	}
	if q.Has("order") {
		order, err := listing.ParseOrder(q.Get("order"))
		if err != nil {
			return cfg, err
		}
		cfg.Order = order
	}
	if q.Has("dirsFirst") {
		dirsFirst, err := strconv.ParseBool(q.Get("dirsFirst"))
		if err != nil {
			return cfg, errors.New("dirsFirst must be a boolean")
		}
		cfg.DirectoriesFirst = dirsFirst
	}
	return cfg, nil
}

func (s *Server) fail(w http.ResponseWriter, event logging.Event, start time.Time, status int, err error) {
	event.StatusCode = status
	event.Error = err.Error()
	s.record(event, start)
	http.Error(w, err.Error(), status)
}

func (s *Server) record(event logging.Event, start time.Time) {
	event.DurationUS = s.now().Sub(start).Microseconds()
	if err := s.eventLog.Write(event); err != nil {
		s.logger.Warn("event log write failed", slog.Any("error", err))
	}
	s.metrics.ObserveListing(event)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func endpointLabel(path string) string {
	switch path {
	case "/v1/listing":
		return "listing"
	case "/v1/path/normalize":
		return "normalize"
	case "/v1/path/base":
		return "base"
	case "/healthz":
		return "health"
	default:
		return "other"
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
