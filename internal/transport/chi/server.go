package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/domain/search/request"
	logpkg "github.com/jeonselab/lawdex/internal/logger"
	"github.com/jeonselab/lawdex/internal/metrics"
	caselawuc "github.com/jeonselab/lawdex/internal/usecase/caselaw"
	healthuc "github.com/jeonselab/lawdex/internal/usecase/health"
	statuteuc "github.com/jeonselab/lawdex/internal/usecase/statute"
)

// Error response codes returned to API clients.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeIndexNotReady        = "index_not_ready"
	codeEmbeddingProviderErr = "embedding_provider_error"
	codeInternalError        = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// searchResponse wraps ranked hits with the echoed query.
type searchResponse[T any] struct {
	Query string `json:"query"`
	Count int    `json:"count"`
	Items []T    `json:"items"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the retrieval services over HTTP.
type Server struct {
	statutes      *statuteuc.Service
	cases         *caselawuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	statutes *statuteuc.Service,
	cases *caselawuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		statutes: statutes,
		cases:    cases,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, codeIndexNotReady),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderErr),
	}
	return s
}

// Mount registers all routes on the router.
func (s *Server) Mount(r gochi.Router) {
	r.Get("/laws/search", s.SearchStatutes)
	r.Get("/cases/search", s.SearchCases)
	r.Get("/cases/{doc_id}", s.GetCase)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchStatutes handles GET /laws/search.
func (s *Server) SearchStatutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	topK, err := intParam(q.Get("k"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "k must be an integer")
		return
	}

	var minScore *float64
	if raw := q.Get("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "min_score must be a number")
			return
		}
		minScore = &v
	}

	req, err := request.NewStatute(q.Get("q"), topK, minScore)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	hits, err := s.statutes.Search(req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("statutes", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	observeSearch("statutes", start, len(hits))

	writeJSON(w, http.StatusOK, searchResponse[domain.StatuteHit]{
		Query: req.Query(),
		Count: len(hits),
		Items: emptyIfNil(hits),
	})
}

// SearchCases handles GET /cases/search.
func (s *Server) SearchCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	k, err := intParam(q.Get("k"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "k must be an integer")
		return
	}
	withSummary, err := boolParam(q.Get("with_summary"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "with_summary must be a boolean")
		return
	}
	withBody, err := boolParam(q.Get("with_body"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "with_body must be a boolean")
		return
	}

	req, err := request.NewCases(
		q.Get("q"), k, withSummary, withBody,
		q.Get("court"), q.Get("from_date"), q.Get("to_date"),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	hits, err := s.cases.Search(r.Context(), req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("cases", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}
	observeSearch("cases", start, len(hits))

	writeJSON(w, http.StatusOK, searchResponse[domain.CaseHit]{
		Query: req.Query(),
		Count: len(hits),
		Items: emptyIfNil(hits),
	})
}

// GetCase handles GET /cases/{doc_id}.
func (s *Server) GetCase(w http.ResponseWriter, r *http.Request) {
	docID, err := strconv.ParseInt(gochi.URLParam(r, "doc_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "doc_id must be an integer")
		return
	}

	q := r.URL.Query()
	withSummary, err := boolParam(q.Get("with_summary"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "with_summary must be a boolean")
		return
	}
	withBody, err := boolParam(q.Get("with_body"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "with_body must be a boolean")
		return
	}

	hit, err := s.cases.Detail(docID, withSummary, withBody)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, hit)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func observeSearch(kind string, start time.Time, hits int) {
	metrics.SearchRequestsTotal.WithLabelValues(kind, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.SearchResults.WithLabelValues(kind).Observe(float64(hits))
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func boolParam(raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndexNotReady,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
