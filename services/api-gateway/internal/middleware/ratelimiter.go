package middleware

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
)

type RateLimiter struct {
	redisClient *redis.Client
	tr          *i18n.Translator
}

func NewRateLimiter(client *redis.Client, tr *i18n.Translator) *RateLimiter {
	return &RateLimiter{redisClient: client, tr: tr}
}

// Limit allows limit requests per window for each signed-in user, or per IP
// before auth has run. Redis outages let requests through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := c.GetString("userId")
		if who == "" {
			who = c.ClientIP()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, who)

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			log.Printf("rate limiter: %v", err)
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, err := rl.redisClient.TTL(c, key).Result()
			if err != nil || ttl < 0 {
				// A key without expiry would block forever.
				rl.redisClient.Expire(c, key, window)
				ttl = window
			}
			secs := int(math.Ceil(ttl.Seconds()))

			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       rl.tr.T(LangFrom(c), "errors.too_many_requests", (time.Duration(secs) * time.Second).String()),
				"code":        "too_many_requests",
				"retry_after": secs,
			})
			return
		}
		c.Next()
	}
}
