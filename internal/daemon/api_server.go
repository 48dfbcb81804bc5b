package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"dvdshop/internal/api"
	"dvdshop/internal/cache"
	"dvdshop/internal/calculator"
	"dvdshop/internal/config"
	"dvdshop/internal/input"
	"dvdshop/internal/logging"
	"dvdshop/internal/movie"
	"dvdshop/internal/services"
)

const (
	shutdownTimeout  = 5 * time.Second
	cachePingTimeout = time.Second
	docsSpecURL      = "/openapi.json"
)

type apiServer struct {
	bind     string
	logger   *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	maxBody  int64
	now      func() time.Time
	started  time.Time
	limiter  *rateLimiter

	handler http.Handler

	mu           sync.Mutex
	listener     net.Listener
	server       *http.Server
	shutdownOnce sync.Once
}

func newAPIServer(cfg *config.Config, c cache.Cache, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Server.Bind)
	if bind == "" {
		return nil, errors.New("server bind address is required")
	}
	srv := &apiServer{
		bind:     bind,
		logger:   logging.NewComponentLogger(logger, "api-server"),
		cache:    c,
		cacheTTL: cfg.CacheTTL(),
		maxBody:  cfg.Server.MaxBodyBytes,
		now:      time.Now,
		started:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/calculate", srv.handleCalculate)
	mux.HandleFunc("/calculate", srv.handleCalculate)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/v1/health", srv.handleVersionedHealth)
	mux.HandleFunc("/openapi.yaml", srv.handleOpenAPIYAML)
	mux.HandleFunc("/openapi.json", srv.handleOpenAPIJSON)
	mux.HandleFunc("/api/docs", srv.handleDocs)
	mux.HandleFunc("/", srv.handleNotFound)

	chain := []middleware{
		requestIDMiddleware,
		accessLogMiddleware(srv.logger),
		recoverMiddleware(srv.logger),
		securityHeadersMiddleware,
		corsMiddleware(cfg.CORS),
	}
	if cfg.RateLimit.Enabled {
		srv.limiter = newRateLimiter(cfg.RateLimit, cfg.RateLimitWindow())
		chain = append(chain, srv.limiter.middleware)
	}
	if cfg.Compression.Enabled {
		compress, err := compressionMiddleware(cfg.Compression.MinBytes)
		if err != nil {
			return nil, err
		}
		chain = append(chain, compress)
	}
	chain = append(chain, authMiddleware(cfg.Server.APIToken))
	srv.handler = applyMiddleware(mux, chain...)

	read, write, idle := cfg.Timeouts()
	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       read,
		WriteTimeout:      write,
		IdleTimeout:       idle,
		ErrorLog:          slog.NewLogLogger(srv.logger.Handler(), slog.LevelWarn),
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.started = s.now()
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.shutdown()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	s.shutdown()
	if s.limiter != nil {
		s.limiter.close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) shutdown() {
	s.shutdownOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("api server shutdown incomplete", logging.Error(err))
		}
	})
}

func (s *apiServer) addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	ctx := services.WithOperation(r.Context(), "calculate")
	logger := logging.WithContext(ctx, s.logger)

	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	req, err := api.DecodeCalculateRequest(body)
	if err != nil {
		s.writeFailure(w, logger, err)
		return
	}

	titles := input.FromSlice(req.Movies)
	resp, hit := s.lookup(ctx, logger, titles)
	if !hit {
		details := calculator.NewService(input.SliceParser{Titles: titles}, logger).RunWithDetails("")
		resp = api.FromDetails(details)
		s.store(ctx, logger, titles, api.Summary(details))
	}
	if s.cache != nil {
		w.Header().Set("X-Cache", cacheHeader(hit))
	}

	logger.Info("cart priced",
		logging.Int("item_count", resp.ItemCount),
		logging.Int("unique_episodes", resp.UniqueEpisodes),
		logging.Float64("total", resp.Total),
		logging.Bool("cache_hit", hit),
	)
	writeJSON(w, logger, http.StatusOK, resp)
}

// lookup serves totals from the cache and rebuilds movies from titles so the
// response always follows request order.
func (s *apiServer) lookup(ctx context.Context, logger *slog.Logger, titles []string) (api.CalculateResponse, bool) {
	if s.cache == nil {
		return api.CalculateResponse{}, false
	}
	key, err := cache.Key(titles)
	if err != nil {
		logger.Debug("cache key unavailable", logging.Error(err))
		return api.CalculateResponse{}, false
	}
	var cached api.CalculateResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logging.WarnWithContext(logger, "cache lookup failed", "cache_get_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "calculation served without cache"),
		)
		return api.CalculateResponse{}, false
	}
	if !found {
		return api.CalculateResponse{}, false
	}
	cached.Movies = api.MoviesFromItems(calculator.ItemsFor(movie.ClassifyAll(titles)))
	return cached, true
}

func (s *apiServer) store(ctx context.Context, logger *slog.Logger, titles []string, summary api.CalculateResponse) {
	if s.cache == nil {
		return
	}
	key, err := cache.Key(titles)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		logging.WarnWithContext(logger, "cache store failed", "cache_set_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "next identical request is recalculated"),
		)
	}
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	now := s.now()
	s.mu.Lock()
	uptime := now.Sub(s.started)
	s.mu.Unlock()
	writeJSON(w, s.logger, http.StatusOK, api.NewHealth(now, uptime, s.cacheHealth(r.Context())))
}

func (s *apiServer) cacheHealth(ctx context.Context) *api.CacheHealth {
	if s.cache == nil {
		return &api.CacheHealth{Backend: config.CacheBackendNone}
	}
	pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	return &api.CacheHealth{Backend: s.cache.Name(), Reachable: s.cache.Ping(pingCtx)}
}

func (s *apiServer) handleVersionedHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, s.logger, http.StatusOK, api.NewVersionedHealth(s.now()))
}

func (s *apiServer) handleOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPIYAML())
}

func (s *apiServer) handleOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	doc, err := api.OpenAPIJSON()
	if err != nil {
		s.writeFailure(w, logging.WithContext(r.Context(), s.logger), err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

func (s *apiServer) handleDocs(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := api.WriteDocsPage(w, docsSpecURL); err != nil {
		s.logger.Error("failed to render docs page", logging.Error(err))
	}
}

func (s *apiServer) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, s.logger, http.StatusNotFound, fmt.Sprintf("route %s %s not found", r.Method, r.URL.Path))
}

// writeFailure maps err to a status. Validation messages are echoed; anything
// else is logged and answered with a generic message.
func (s *apiServer) writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, logger, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	var invalid *services.InvalidInputError
	if errors.As(err, &invalid) {
		writeError(w, logger, http.StatusBadRequest, invalid.Error())
		return
	}
	status := services.HTTPStatus(err)
	if status < http.StatusInternalServerError {
		writeError(w, logger, status, err.Error())
		return
	}
	logging.ErrorWithContext(logger, "request failed", "api_request_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect the error field"),
	)
	writeError(w, logger, status, "internal server error")
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, nil, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	return false
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, api.NewError(status, message))
}
