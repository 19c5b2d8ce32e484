package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cartcore/internal/actor"
	"github.com/nikolayk812/cartcore/internal/auth"
	"github.com/nikolayk812/cartcore/internal/domain"
	"go.uber.org/zap"
)

const (
	GuestHeader     = "X-Guest-Id"
	GuestQueryParam = "guestId"
	APIKeyHeader    = "X-API-KEY"

	resolutionKey = "cart.actor"
	storeKey      = "cart.store"
	claimsKey     = "cart.claims"
)

type StoreLookup interface {
	GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error)
}

// extractBearer reads the access token from the Authorization header, falling
// back to the access_token cookie.
func extractBearer(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func guestToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(GuestHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Query(GuestQueryParam))
}

// OptionalAuth validates a bearer token when one is presented. A present but
// invalid token is rejected rather than downgraded to a guest.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID(c) == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Next()
	}
}

// ResolveActor resolves the caller once and stores it for the rest of the
// request. Minted guest tokens are echoed in the X-Guest-Id response header.
func ResolveActor(resolver *actor.Resolver, allowMint bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := resolver.Resolve(actor.Request{
			UserID:     userID(c),
			GuestToken: guestToken(c),
			AllowMint:  allowMint,
		})
		if err != nil {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}

		if res.Minted {
			c.Header(GuestHeader, res.GuestToken)
		}

		c.Set(resolutionKey, res)
		c.Next()
	}
}

// ResolveStore loads the approved store named by the :storeSlug path parameter.
func ResolveStore(stores StoreLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := stores.GetStoreBySlug(c.Request.Context(), c.Param("storeSlug"))
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}

		c.Set(storeKey, store)
		c.Next()
	}
}

func RequireAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(APIKeyHeader)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			respondError(c, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		c.Next()
	}
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func userID(c *gin.Context) string {
	claims, ok := c.Get(claimsKey)
	if !ok {
		return ""
	}
	return claims.(*auth.Claims).UserID
}

func resolution(c *gin.Context) actor.Resolution {
	res, _ := c.Get(resolutionKey)
	r, _ := res.(actor.Resolution)
	return r
}

func currentStore(c *gin.Context) domain.Store {
	store, _ := c.Get(storeKey)
	s, _ := store.(domain.Store)
	return s
}
