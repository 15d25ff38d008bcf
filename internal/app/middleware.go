package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/kaizen-academy/kaizen-admin/internal/observability"
	"github.com/kaizen-academy/kaizen-admin/internal/platform/httpx"
	"github.com/kaizen-academy/kaizen-admin/internal/shared"
)

const globalRequestsPerMinute = 300

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics
	// Now is the clock used to judge backend token expiry.
	Now func() time.Time
}

// MiddlewareStack installs the dashboard middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		accessLog(logger),
		loadSession(cfg.SessionManager, logger),
		dropExpiredToken(logger, now),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout(cfg.Config)),
		secureHeaders(cfg.Config, logger),
		middleware.Compress(5),
		httprate.Limit(globalRequestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
		verifyCSRF(cfg.CSRFManager, logger),
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, cfg.Metrics.Middleware)
	}
	return middlewares
}

func requestTimeout(cfg *Config) time.Duration {
	if cfg != nil && cfg.AppRequestTimeout > 0 {
		return cfg.AppRequestTimeout
	}
	return 30 * time.Second
}

// accessLog writes one structured line per request, tagged with the chi
// request id so it can be matched with handler logs.
func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case strings.HasPrefix(r.URL.Path, "/static/"):
				level = slog.LevelDebug
			}
			logger.LogAttrs(r.Context(), level, "request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("took", time.Since(start)))
		})
	}
}

// committingWriter persists the session right before the first byte of the
// response goes out, so cookies land in the header block.
type committingWriter struct {
	http.ResponseWriter
	sess      *shared.Session
	manager   *shared.SessionManager
	req       *http.Request
	logger    *slog.Logger
	committed bool
}

func (w *committingWriter) WriteHeader(statusCode int) {
	if !w.committed {
		w.committed = true
		if err := w.manager.Commit(w.req.Context(), w.ResponseWriter, w.req, w.sess); err != nil {
			w.logger.Error("commit session", slog.Any("error", err))
		}
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *committingWriter) Write(data []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}

func (w *committingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func loadSession(manager *shared.SessionManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Load(r.Context(), r)
			if err != nil {
				logger.Error("load session", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			r = r.WithContext(shared.ContextWithSession(r.Context(), sess))
			next.ServeHTTP(&committingWriter{
				ResponseWriter: w,
				sess:           sess,
				manager:        manager,
				req:            r,
				logger:         logger,
			}, r)
		})
	}
}

// dropExpiredToken forgets a backend token whose exp claim has passed. The
// request then continues as anonymous, and the login page explains why.
func dropExpiredToken(logger *slog.Logger, now func() time.Time) func(http.Handler) http.Handler {
	tokens := shared.NewSessionTokens().WithNow(now)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess != nil && shared.HasToken(sess) {
				if _, err := tokens.Token(r.Context()); errors.Is(err, shared.ErrTokenExpired) {
					logger.Info("backend token expired", slog.String("user", sess.User()))
					shared.ClearAuth(sess)
					sess.AddFlash(shared.FlashMessage{Kind: shared.FlashWarning, Message: shared.SessionExpiredMessage})
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secureHeaders(cfg *Config, logger *slog.Logger) func(http.Handler) http.Handler {
	headers := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           cfg.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := headers.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", slog.Any("error", err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// verifyCSRF checks unsafe methods against the session token. Forms post it as
// a field; the course dropdown script sends it as a header and gets a JSON
// problem back on failure.
func verifyCSRF(manager *shared.CSRFManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			token := r.Header.Get(shared.CSRFHeader)
			if token == "" {
				token = r.PostFormValue(shared.CSRFFormField)
			}
			if err := checkCSRF(r.Context(), manager, token); err != nil {
				logger.Warn("csrf validation failed", slog.String("path", r.URL.Path), slog.Any("error", err))
				if wantsJSON(r) {
					httpx.Problem(w, http.StatusForbidden, "Forbidden", "missing or invalid CSRF token")
					return
				}
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkCSRF(ctx context.Context, manager *shared.CSRFManager, token string) error {
	sess := shared.SessionFromContext(ctx)
	if sess == nil {
		return errors.New("no session")
	}
	return manager.VerifyToken(ctx, sess, token)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") || r.Header.Get(shared.CSRFHeader) != ""
}
