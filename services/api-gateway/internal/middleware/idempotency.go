package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	DefaultIdempotencyTTL = 24 * time.Hour

	statusPending   = "pending"
	statusCompleted = "completed"
)

type idempotencyRecord struct {
	Status      string `json:"status"`
	RequestHash string `json:"request_hash"`
	Code        int    `json:"code,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// Idempotency replays the stored response of a POST that repeats an
// Idempotency-Key. Keys are scoped per user and route. A key that is still
// being processed, or reused with a different body, gets 409. Server errors are
// not stored so the client may retry them.
type Idempotency struct {
	rdb *redis.Client
	tr  *i18n.Translator
	ttl time.Duration
}

func NewIdempotency(rdb *redis.Client, tr *i18n.Translator, ttl time.Duration) *Idempotency {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &Idempotency{rdb: rdb, tr: tr, ttl: ttl}
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func (i *Idempotency) Handle(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idemKey := c.GetHeader(IdempotencyHeader)
		if c.Request.Method != http.MethodPost || idemKey == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			Fail(c, i.tr, http.StatusBadRequest, "bad_request")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(append([]byte(c.Request.URL.Path+":"), body...))
		hash := hex.EncodeToString(sum[:])
		key := fmt.Sprintf("idempotency:%s:%s:%s", scope, c.GetString("userId"), idemKey)

		pending, _ := json.Marshal(idempotencyRecord{Status: statusPending, RequestHash: hash})
		ok, err := i.rdb.SetNX(c, key, pending, i.ttl).Result()
		if err != nil {
			log.Printf("idempotency store unavailable: %v", err)
			c.Next()
			return
		}
		if !ok {
			i.replay(c, key, hash)
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		code := rec.Status()
		if code >= http.StatusInternalServerError {
			if err := i.rdb.Del(c, key).Err(); err != nil {
				log.Printf("idempotency release %s: %v", key, err)
			}
			return
		}
		done, _ := json.Marshal(idempotencyRecord{
			Status:      statusCompleted,
			RequestHash: hash,
			Code:        code,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err := i.rdb.Set(c, key, done, i.ttl).Err(); err != nil {
			log.Printf("idempotency store %s: %v", key, err)
		}
	}
}

func (i *Idempotency) replay(c *gin.Context, key, hash string) {
	raw, err := i.rdb.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Released between SetNX and Get: the first attempt failed.
		Fail(c, i.tr, http.StatusConflict, "idempotency_conflict")
		return
	}
	if err != nil {
		log.Printf("idempotency lookup %s: %v", key, err)
		Fail(c, i.tr, http.StatusServiceUnavailable, "unavailable")
		return
	}

	var rec idempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.RequestHash != hash || rec.Status != statusCompleted {
		Fail(c, i.tr, http.StatusConflict, "idempotency_conflict")
		return
	}

	c.Header(ReplayedHeader, "true")
	c.Data(rec.Code, rec.ContentType, rec.Body)
	c.Abort()
}
