package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cartcore/internal/actor"
	"github.com/nikolayk812/cartcore/internal/auth"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Handlers       *Handlers
	Stores         StoreLookup
	JWTService     *auth.JWTService
	Resolver       *actor.Resolver
	APIKey         string
	AllowedOrigins []string
	DB             Pinger
	Logger         *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", GuestHeader},
		ExposeHeaders:    []string{GuestHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		// credentials cannot be combined with a literal wildcard origin
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.DB != nil {
			if err := cfg.DB.Ping(c.Request.Context()); err != nil {
				respondError(c, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := cfg.Handlers
	storeMW := ResolveStore(cfg.Stores, cfg.Logger)

	carts := r.Group("/api/cart/:storeSlug", OptionalAuth(cfg.JWTService), storeMW)
	{
		shopper := carts.Group("", ResolveActor(cfg.Resolver, true))
		shopper.GET("", h.GetCart)
		shopper.POST("/items", h.AddItem)
		shopper.PATCH("/items/:itemId", h.UpdateItem)
		shopper.DELETE("/items/:itemId", h.RemoveItem)

		carts.POST("/merge", RequireUser(), h.Merge)
		carts.POST("/checkout", RequireAPIKey(cfg.APIKey), ResolveActor(cfg.Resolver, false), h.BeginCheckout)
	}

	internal := r.Group("/internal", RequireAPIKey(cfg.APIKey))
	{
		internal.POST("/stores/:storeSlug/carts/complete", storeMW, h.CompleteCheckout)
		internal.POST("/carts/:cartId/abandon", h.AbandonCart)
	}

	return r
}
