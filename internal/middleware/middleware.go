package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	handlers "blogapi/internal/handler"
	"blogapi/internal/models"
	"blogapi/internal/service"

	"github.com/rs/xid"
)

type Middleware func(http.Handler) http.Handler

// Authenticator resolves a bearer token to a stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

const RequestIDHeader = "X-Request-ID"

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}

func identityOf(user *models.User) models.Identity {
	return models.Identity{UserID: user.UserID, Role: user.Role}
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					handlers.WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
					return
				}
				handlers.WriteServiceError(w, err)
				return
			}

			ctx := handlers.WithIdentity(r.Context(), identityOf(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches the caller when a valid token is sent.
// Missing or invalid tokens leave the request anonymous.
func OptionalAuthMiddleware(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					log.Printf("optional auth: %v", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := handlers.WithIdentity(r.Context(), identityOf(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RoleMiddleware(allowedRoles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := handlers.IdentityFromContext(r.Context())
			if !ok {
				handlers.WriteError(w, "Not authorized to access this route", http.StatusUnauthorized)
				return
			}

			if !service.RoleAllowed(identity.Role, allowedRoles...) {
				handlers.WriteError(w, fmt.Sprintf("User role %s is not authorized to access this route", identity.Role), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(origin string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = xid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s %s %d %s", requestID, r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
	})
}

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil {
				if rv == http.ErrAbortHandler {
					panic(rv)
				}
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rv, debug.Stack())
				handlers.WriteError(w, "Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Chain wraps h so the last middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
