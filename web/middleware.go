/* middleware.go
 * Contains the access guard middlewares and the per-client rate limiter.
 * Guards are declared per route in server.go; a route without a guard is
 * deliberately open, not implicitly protected.
 */

package web

import (
	"context"
	"log"
	"net/http"
	"sync"

	"contest-beaters/api/shared"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type principalKey struct{}

// withPrincipal stores the authenticated principal in the request context
func withPrincipal(ctx context.Context, p shared.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the authenticated principal from the context
func PrincipalFromContext(ctx context.Context) (shared.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(shared.Principal)
	return p, ok
}

// VerifyUser authenticates the request from the custom "token" header. A
// missing header or a token that fails verification both reject with 401.
// On success the principal is attached to the context for the handlers
// downstream. The role inside the token is trusted for the token's lifetime;
// it is not re-read from the user directory per request.
func (s *Server) VerifyUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("token")
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		principal := shared.Principal{Email: claims.Email, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// VerifyAdmin rejects principals without the admin role. It must run after
// VerifyUser; a missing principal here is a route-wiring bug, so it fails
// loudly as a server error rather than pretending to authorize.
func (s *Server) VerifyAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			log.Println("VerifyAdmin ran on a route without VerifyUser:", r.URL.Path)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		if principal.Role != shared.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSelf restricts a route to the owner of the resource: the email in
// the named path parameter must match the authenticated principal's email.
// Must run after VerifyUser.
func (s *Server) RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				log.Println("RequireSelf ran on a route without VerifyUser:", r.URL.Path)
				writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			if chi.URLParam(r, param) != principal.Email {
				writeMessage(w, http.StatusUnauthorized, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter hands out one token bucket per client address
type rateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerSecond int, burst int) *rateLimiter {
	return &rateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler returns the rate limiting middleware handler, keyed by remote
// address
func (rl *rateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.get(r.RemoteAddr).Allow() {
			writeMessage(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
