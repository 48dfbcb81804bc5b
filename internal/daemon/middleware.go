package daemon

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"dvdshop/internal/config"
	"dvdshop/internal/logging"
	"dvdshop/internal/services"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
	corsMaxAgeSeconds  = 86400
)

type middleware func(http.Handler) http.Handler

// applyMiddleware wraps h so that the first middleware is the outermost.
func applyMiddleware(h http.Handler, chain ...middleware) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

// requestIDMiddleware propagates X-Request-ID, generating one when the caller
// sent none, and records the client IP on the request context.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := services.WithRequestID(r.Context(), id)
		ctx = services.WithClientIP(ctx, clientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP returns the normalized remote address of r. Forwarding headers are
// not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = strings.Trim(r.RemoteAddr, "[]")
	}
	return normalizeIP(host)
}

func normalizeIP(value string) string {
	if ip := net.ParseIP(strings.TrimSpace(value)); ip != nil {
		return ip.String()
	}
	return strings.TrimSpace(value)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func accessLogMiddleware(logger *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case rec.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case r.URL.Path == "/health" || r.URL.Path == "/v1/health":
				level = slog.LevelDebug
			}
			logging.WithContext(r.Context(), logger).Log(r.Context(), level, "request completed",
				logging.Args(
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
					logging.Int("status", rec.status),
					logging.Int("bytes", rec.bytes),
					logging.Duration("duration", time.Since(start)),
				)...,
			)
		})
	}
}

func recoverMiddleware(logger *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logging.ErrorWithContext(logging.WithContext(r.Context(), logger), "handler panic", "api_handler_panic",
						logging.String("panic", fmt.Sprint(rec)),
						logging.String("stack", string(debug.Stack())),
						logging.String(logging.FieldErrorHint, "report the stack trace"),
					)
					writeError(w, nil, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

const (
	apiContentSecurityPolicy  = "default-src 'none'; frame-ancestors 'none'"
	docsContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; " +
		"style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https:; connect-src 'self'; frame-ancestors 'none'"
)

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("X-Permitted-Cross-Domain-Policies", "none")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		if r.URL.Path == "/api/docs" {
			h.Set("Content-Security-Policy", docsContentSecurityPolicy)
		} else {
			h.Set("Content-Security-Policy", apiContentSecurityPolicy)
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware applies the configured origin policy and answers preflight
// requests with 204.
func corsMiddleware(cfg config.CORS) middleware {
	wildcard := false
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			wildcard = true
			continue
		}
		origins[strings.TrimSuffix(origin, "/")] = struct{}{}
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			_, listed := origins[origin]
			allowed := wildcard || listed

			h := w.Header()
			h.Add("Vary", "Origin")
			if allowed {
				if wildcard && !listed && !cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
				}
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				h.Set("Access-Control-Expose-Headers", requestIDHeader+", Retry-After, X-Cache")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					h.Set("Access-Control-Allow-Methods", methods)
					requested := r.Header.Get("Access-Control-Request-Headers")
					if requested == "" {
						requested = "Content-Type, Authorization, " + requestIDHeader
					}
					h.Set("Access-Control-Allow-Headers", requested)
					h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAgeSeconds))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// compressionMiddleware gzips responses of at least minBytes when the client
// accepts it.
func compressionMiddleware(minBytes int) (middleware, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minBytes))
	if err != nil {
		return nil, fmt.Errorf("configure compression: %w", err)
	}
	return func(next http.Handler) http.Handler { return wrap(next) }, nil
}
