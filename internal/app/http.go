package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"

	"msgboard/internal/config"
	"msgboard/internal/gqlctx"
	"msgboard/internal/graph"
	"msgboard/internal/pubsub"
	"msgboard/internal/session"
	"msgboard/internal/ssr"
	"msgboard/internal/store"
)

const tokenTTL = 30 * time.Minute

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	st := store.New(infra.DB)
	codec := session.NewCodec(cfg.Secret, tokenTTL)

	var broker pubsub.Broker = pubsub.NewMemory()
	if infra.Redis != nil {
		broker = pubsub.NewRedis(infra.Redis.Client)
	}

	builder := gqlctx.NewBuilder(st, codec)
	schema := graph.MustSchema(graph.NewResolver(st, codec, broker))

	// Queries and mutations arrive as POST and pass through the request
	// context middleware; websocket upgrades arrive as GET and go through
	// the subscription context builder instead.
	relayHandler := &relay.Handler{Schema: schema}
	ws := graphqlws.NewHandlerFunc(
		schema,
		relayHandler,
		graphqlws.WithContextGenerator(graphqlws.ContextGeneratorFunc(builder.BuildSubscription)),
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	router.POST("/graphql", gqlctx.GinMiddleware(builder), gin.WrapH(relayHandler))
	router.GET("/graphql", gin.WrapH(ws))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Token cookie for SSR
	// ----------------------------

	// The browser client persists its token here so SSR requests carry the
	// same identity as the hydrated page.
	router.POST("/session", func(c *gin.Context) {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		claims, err := codec.Verify(req.Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		session.SetCookie(c.Writer, req.Token, claims.ExpiresAt.Time, session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Status(http.StatusNoContent)
	})

	router.DELETE("/session", func(c *gin.Context) {
		session.ClearCookie(c.Writer, session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Status(http.StatusNoContent)
	})

	// ----------------------------
	// SSR pages
	// ----------------------------

	pages := ssr.NewHandler(cfg.APIURL, cfg.SSRTimeout)
	router.GET("/", gin.WrapH(pages.Page(ssr.FeedPage())))
	router.GET("/account", gin.WrapH(pages.Page(ssr.AccountPage())))

	// ----------------------------
	// Cleanup
	// ----------------------------

	cleanup := func() error {
		if infra.Redis != nil {
			_ = infra.Redis.Close()
		}
		return infra.DB.Close()
	}

	return router, cleanup, nil
}

// requestID tags every request so one operation's log lines correlate.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
