package gqlctx

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware applies Build to every request before the GraphQL handler runs.
// A failed build writes a GraphQL-shaped authentication error and never
// reaches the handler.
func (b *Builder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc, err := b.Build(r)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
	})
}

func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	body := map[string]any{
		"errors": []map[string]any{
			{"message": err.Error()},
		},
	}
	_ = json.NewEncoder(w).Encode(body)
}

// GinMiddleware adapts the net/http middleware to Gin, keeping the context
// pipeline itself framework-free.
func GinMiddleware(b *Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		b.Middleware(next).ServeHTTP(c.Writer, c.Request)

		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
