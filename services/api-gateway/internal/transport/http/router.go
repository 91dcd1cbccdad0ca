package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/middleware"
)

// Deps are the pieces the router is assembled from. Limiter and Idempotency
// may be nil when the gateway runs without Redis.
type Deps struct {
	Economy     *EconomyHandler
	Tokens      *middleware.TokenValidator
	Translator  *i18n.Translator
	Limiter     *middleware.RateLimiter
	Idempotency *middleware.Idempotency
	Origins     []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.ContextWithFallback = true

	config := cors.DefaultConfig()
	if len(d.Origins) > 0 {
		config.AllowOrigins = d.Origins
		config.AllowCredentials = true
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept-Language", middleware.IdempotencyHeader}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))
	r.Use(middleware.Language(d.Translator))

	limit := func(key string, n int, window time.Duration) gin.HandlerFunc {
		if d.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return d.Limiter.Limit(key, n, window)
	}
	idempotent := func(scope string) gin.HandlerFunc {
		if d.Idempotency == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return d.Idempotency.Handle(scope)
	}

	h := d.Economy
	api := r.Group("/api/v1")
	{
		api.GET("/languages", languages(d.Translator))

		economy := api.Group("/economy")
		economy.Use(middleware.AuthMiddleware(d.Tokens, d.Translator))
		{
			economy.POST("/profile", h.CreateProfile)
			economy.GET("/profile", h.GetProfile)

			economy.GET("/hearts", h.GetHearts)
			economy.POST("/hearts/deduct", h.DeductHearts)
			economy.POST("/shop/convert", limit("convert", 10, time.Minute), idempotent("convert"), h.ConvertGems)

			// Rewards are granted by the course backend on the learner's behalf.
			grant := economy.Group("", middleware.RequireScope(d.Translator, middleware.ScopeGrant))
			grant.POST("/hearts/award", h.AwardHearts)
			grant.POST("/xp", h.AwardXP)
			grant.POST("/gems", h.AwardGems)
			grant.POST("/jar/pollen", h.AddPollen)

			economy.GET("/jar", h.GetJar)
			economy.POST("/gifts/generate", h.GenerateGift)
			economy.GET("/gifts/unclaimed", h.UnclaimedGift)
			economy.POST("/gifts/:id/claim", limit("claim", 5, time.Minute), idempotent("claim"), h.ClaimGift)
			economy.GET("/badge", h.Badge)

			economy.GET("/leaderboard", h.Leaderboard)
			economy.GET("/events", h.Events)
		}
	}

	return r
}

// GET /api/v1/languages
func languages(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"languages": tr.Languages(), "current": middleware.LangFrom(c)})
	}
}
