package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jeonselab/lawdex/internal/config"
	dbRedis "github.com/jeonselab/lawdex/internal/db/redis"
	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/index/dense"
	logpkg "github.com/jeonselab/lawdex/internal/logger"
	"github.com/jeonselab/lawdex/internal/metrics"
	"github.com/jeonselab/lawdex/internal/repository/casedetail"
	"github.com/jeonselab/lawdex/internal/repository/casemeta"
	"github.com/jeonselab/lawdex/internal/repository/corpus"
	"github.com/jeonselab/lawdex/internal/repository/embcache"
	chiTransport "github.com/jeonselab/lawdex/internal/transport/chi"
	openaiEmb "github.com/jeonselab/lawdex/internal/transport/openai"
	caselawuc "github.com/jeonselab/lawdex/internal/usecase/caselaw"
	healthuc "github.com/jeonselab/lawdex/internal/usecase/health"
	statuteuc "github.com/jeonselab/lawdex/internal/usecase/statute"
	"github.com/jeonselab/lawdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lawdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("artifacts_base_dir", cfg.Artifacts.BaseDir),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterRetrievalMetrics()

	statuteSvc := buildStatuteService(cfg, logger)
	caseSvc, caseEmbedder := buildCaseService(cfg, logger)

	healthSvc := healthuc.New(statuteSvc, caseSvc, newEmbeddingHealthChecker(caseEmbedder))

	server := chiTransport.NewServer(statuteSvc, caseSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildStatuteService loads the statute corpus and builds the lexical
// retriever. A load failure degrades to a not-ready service instead of
// aborting startup.
func buildStatuteService(cfg config.Config, logger *zap.Logger) *statuteuc.Service {
	articles, err := corpus.Load(cfg.Artifacts.BaseDir, cfg.Artifacts.StatuteCorpus, cfg.Artifacts.StatuteMeta)
	if err != nil {
		logger.Warn("Statute corpus unavailable, statute search disabled", zap.Error(err))
		return statuteuc.Unavailable(err)
	}

	svc := statuteuc.New(articles, statuteuc.Options{MaxFeatures: cfg.Retrieval.MaxFeatures})
	logger.Info("Statute index built", zap.Int("articles", svc.Len()))
	return svc
}

// buildCaseService loads the dense index artifacts and builds the case-law
// search service, also degrading to not-ready on failure. The embedder is
// returned separately for the health check.
func buildCaseService(cfg config.Config, logger *zap.Logger) (*caselawuc.Service, domain.Embedder) {
	indexDir := resolvePath(cfg.Artifacts.BaseDir, cfg.Artifacts.CaseIndexDir)

	embedder := buildEmbedder(cfg, indexDir, logger)

	index, err := dense.Load(filepath.Join(indexDir, "vectors.bin"))
	if err != nil {
		logger.Warn("Case vectors unavailable, case search disabled", zap.Error(err))
		return caselawuc.Unavailable(err), embedder
	}

	meta, err := casemeta.Load(indexDir, logger)
	if err != nil {
		logger.Warn("Case metadata unavailable, case search disabled", zap.Error(err))
		return caselawuc.Unavailable(err), embedder
	}

	details := casedetail.Empty()
	if path := cfg.Artifacts.CaseDetails; path != "" {
		loaded, err := casedetail.Load(resolvePath(cfg.Artifacts.BaseDir, path))
		if err != nil {
			logger.Warn("Case detail table unavailable, serving metadata only", zap.Error(err))
		} else {
			details = loaded
			logger.Info("Case detail table loaded", zap.Int("cases", loaded.Len()))
		}
	}

	svc := caselawuc.New(index, meta, details, embedder, caselawuc.Options{
		Overfetch:    cfg.Retrieval.Overfetch,
		SummaryLimit: cfg.Retrieval.SummaryChars,
	})
	logger.Info("Case index loaded", zap.Int("documents", meta.Len()))
	return svc, embedder
}

// buildEmbedder assembles the query embedder chain: OpenAI -> Cached.
// The model name is pinned by the index artifacts so queries and stored
// vectors share one embedding space.
func buildEmbedder(cfg config.Config, indexDir string, logger *zap.Logger) domain.Embedder {
	model := casemeta.ModelName(indexDir, cfg.Embedding.FallbackModel)

	var embedder domain.Embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", model),
	)

	if len(cfg.Cache.Addrs) == 0 {
		return embedder
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		logger.Warn("Embedding cache unavailable, continuing without it", zap.Error(err))
		return embedder
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Embedding cache not ready, continuing without it", zap.Error(err))
		store.Close()
		return embedder
	}

	logger.Info("Embedding cache connected", zap.Strings("addrs", cfg.Cache.Addrs))
	return embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
