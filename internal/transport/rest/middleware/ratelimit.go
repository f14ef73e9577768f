package middleware

import (
	"net/http"

	"bookforge/internal/cache"
)

// RateLimitMiddleware enforces a per-author, per-scope request limit per
// minute. Scopes keep the expensive AI generation endpoints on a separate,
// tighter budget than plain CRUD. Limiter errors fail open so a Redis hiccup
// does not take the API down.
type RateLimitMiddleware struct {
	limiter cache.RateLimiter
	limit   int
	scope   string
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter cache.RateLimiter, limit int, scope string) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, limit: limit, scope: scope}
}

// Limit rejects requests over the per-author limit. Must run after
// RequireAuthor so the author ID is on the context.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorID := GetAuthorID(r.Context())
		if authorID == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := m.limiter.Allow(r.Context(), m.scope+":"+authorID, m.limit)
		if err == nil && !allowed {
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
