package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

const identityCtxKey = ContextKey("identity")

// Claims is the JWT payload issued by the user service.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the caller as read from a valid bearer token.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(Identity)
	return id, ok && id.UserID != ""
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user_id claim")
	}
	return claims, nil
}

// OptionalIdentity attaches the caller's identity when a valid bearer token
// is present. Requests without one, or with a bad one, proceed anonymously.
func OptionalIdentity(jwtSecret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if jwtSecret == "" || header == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Debugf("Ignoring malformed authorization header on %s", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			claims, err := parseToken(parts[1], jwtSecret)
			if err != nil {
				log.Warnf("Ignoring invalid bearer token on %s: %v", r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), identityCtxKey, Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
				Name:   claims.Name,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// Instrument records latency and error responses per route pattern.
func Instrument(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.HTTPRequestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			if status := ww.Status(); status >= http.StatusBadRequest {
				m.HTTPRequestErrorsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
			}
		})
	}
}
