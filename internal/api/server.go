// Package api exposes the projection engine over HTTP.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"github.com/rpgo/asset-projector/internal/calculation"
	"github.com/rpgo/asset-projector/internal/config"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// CacheHeader reports whether a projection was served from the cache.
const CacheHeader = "X-Cache"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Defaults for the projection cache and the request limiter.
const (
	DefaultCacheExpiration = 15 * time.Minute
	cacheCleanupInterval   = 30 * time.Minute
	DefaultRateInterval    = 100 * time.Millisecond
	DefaultRateBurst       = 30
)

// Server serves projections computed by a CalculationEngine.
type Server struct {
	engine  *calculation.CalculationEngine
	parser  *config.InputParser
	logger  calculation.Logger
	cache   *cache.Cache
	limiter *rate.Limiter
}

// Option configures a Server.
type Option func(*Server)

// WithCacheExpiration sets how long projection results stay cached.
func WithCacheExpiration(d time.Duration) Option {
	return func(s *Server) { s.cache = cache.New(d, cacheCleanupInterval) }
}

// WithRateLimit allows one request per interval with the given burst.
func WithRateLimit(interval time.Duration, burst int) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Every(interval), burst) }
}

// NewServer builds a server around engine. A nil engine uses the defaults.
func NewServer(engine *calculation.CalculationEngine, logger calculation.Logger, opts ...Option) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	s := &Server{
		engine:  engine,
		parser:  config.NewInputParser(),
		logger:  logger,
		cache:   cache.New(DefaultCacheExpiration, cacheCleanupInterval),
		limiter: rate.NewLimiter(rate.Every(DefaultRateInterval), DefaultRateBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.requestID, s.rateLimit)

	router.HandleFunc("/healthz", s.healthHandler).Methods("GET")

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/projections", s.portfolioHandler).Methods("POST")
	v1.HandleFunc("/investments/project", s.investmentHandler).Methods("POST")
	v1.HandleFunc("/properties/project", s.propertyHandler).Methods("POST")
	v1.HandleFunc("/validate", s.validateHandler).Methods("POST")
	return router
}

// NewHTTPServer wraps Router with the timeouts used by `serve`.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Infof("request_id=%s method=%s path=%s duration=%s", id, r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.logger.Warnf("rate limit exceeded: method=%s path=%s remote=%s", r.Method, r.URL.Path, r.RemoteAddr)
			s.sendJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cacheKey hashes the resolved inputs of a projection. Inputs are encoded
// after defaults and migrations are applied, so equivalent records share a key.
func cacheKey(kind string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return kind + ":" + hex.EncodeToString(sum[:]), nil
}

// cached returns the value stored under key, computing and storing it on a
// miss. compute errors are not cached.
func (s *Server) cached(w http.ResponseWriter, kind string, input any, compute func() (any, error)) (any, error) {
	key, err := cacheKey(kind, input)
	if err != nil {
		s.logger.Warnf("projection cache key failed: %v", err)
		w.Header().Set(CacheHeader, "MISS")
		return compute()
	}
	if v, found := s.cache.Get(key); found {
		w.Header().Set(CacheHeader, "HIT")
		return v, nil
	}
	w.Header().Set(CacheHeader, "MISS")
	v, err := compute()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("failed to encode response: status=%d: %v", status, err)
	}
}

func (s *Server) sendJSONError(w http.ResponseWriter, message string, status int) {
	s.logger.Warnf("sending error to client: status=%d message=%s", status, message)
	s.writeJSON(w, status, map[string]string{"error": message})
}
