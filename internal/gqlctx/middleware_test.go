package gqlctx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgboard/internal/db"
	"msgboard/internal/session"
	"msgboard/internal/store"
)

func newTestBuilder() (*Builder, *session.Codec) {
	codec := session.NewCodec("top-secret", time.Hour)
	return NewBuilder(store.New(&db.DB{}), codec), codec
}

func TestMiddlewareAnonymous(t *testing.T) {
	b, _ := newTestBuilder()

	var rc *RequestContext
	handler := b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc = From(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, rc)
	assert.Nil(t, rc.Viewer)
	assert.NotNil(t, rc.Store)
	assert.NotNil(t, rc.Loaders)
	assert.Equal(t, "top-secret", rc.Secret)
}

func TestMiddlewareValidToken(t *testing.T) {
	b, codec := newTestBuilder()

	token, err := codec.Sign("user-1", "amelia@example.com", "amelia", "admin")
	require.NoError(t, err)

	var rc *RequestContext
	handler := b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc = From(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(TokenHeader, token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, rc)
	require.NotNil(t, rc.Viewer)
	assert.Equal(t, "user-1", rc.Viewer.UserID)
	assert.Equal(t, "admin", rc.Viewer.Role)
}

// A tampered token must abort context construction: the wrapped handler is
// never invoked, so no resolver side effects can occur.
func TestMiddlewareTamperedToken(t *testing.T) {
	b, codec := newTestBuilder()

	token, err := codec.Sign("user-1", "amelia@example.com", "amelia", "")
	require.NoError(t, err)

	invoked := false
	handler := b.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		invoked = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(TokenHeader, token[:len(token)-2]+"xx")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, invoked)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session expired")
	assert.Contains(t, rec.Body.String(), `"errors"`)
}

func TestMiddlewareExpiredToken(t *testing.T) {
	b, _ := newTestBuilder()

	expired, err := session.NewCodec("top-secret", -time.Minute).
		Sign("user-1", "amelia@example.com", "amelia", "")
	require.NoError(t, err)

	invoked := false
	handler := b.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		invoked = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(TokenHeader, expired)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, invoked)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Each operation gets its own batching caches; nothing is shared across
// requests.
func TestMiddlewareFreshLoadersPerRequest(t *testing.T) {
	b, _ := newTestBuilder()

	var seen []*Loaders
	handler := b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, From(r.Context()).Loaders)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
}

func TestGinMiddlewarePassesContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b, codec := newTestBuilder()

	token, err := codec.Sign("user-1", "amelia@example.com", "amelia", "admin")
	require.NoError(t, err)

	var rc *RequestContext
	router := gin.New()
	router.POST("/graphql", GinMiddleware(b), func(c *gin.Context) {
		rc = From(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(TokenHeader, token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, rc)
	require.NotNil(t, rc.Viewer)
	assert.Equal(t, "user-1", rc.Viewer.UserID)
}

func TestGinMiddlewareRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b, _ := newTestBuilder()

	invoked := false
	router := gin.New()
	router.POST("/graphql", GinMiddleware(b), func(c *gin.Context) {
		invoked = true
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(TokenHeader, "not-a-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.False(t, invoked)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session expired")
}

func TestBuildSubscription(t *testing.T) {
	b, _ := newTestBuilder()

	ctx, err := b.BuildSubscription(context.Background(), nil)
	require.NoError(t, err)

	rc := From(ctx)
	require.NotNil(t, rc)
	assert.NotNil(t, rc.Store)
	assert.Nil(t, rc.Viewer)
	assert.Nil(t, rc.Loaders)
}
