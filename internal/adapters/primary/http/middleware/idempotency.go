package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/metrics"
)

const (
	headerIdempotencyKey    = "X-Idempotency-Key"
	headerIdempotencyStatus = "X-Idempotency-Status"

	fingerprintLen = 32
)

// storedResponse is the serialized replay record for a completed request.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency deduplicates mutating requests per user. Identical requests
// replay the first 2xx response; concurrent duplicates are rejected with 409
// until the first one finishes.
func Idempotency(store ports.IdempotencyStore, ttl, lockTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		userID := c.GetString(ContextUserID)
		if userID == "" {
			c.Next()
			return
		}

		// The fingerprint covers the raw body for every content type; the
		// upload limit keeps the buffered copy bounded. The body is restored
		// for the handler.
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		fp := fingerprint(userID, c.Request.Method, c.Request.URL.Path, body)
		ctx := c.Request.Context()

		if raw, ok := store.GetResponse(ctx, userID, fp); ok {
			var stored storedResponse
			if err := json.Unmarshal(raw, &stored); err == nil {
				metrics.IdempotencyHits.Inc()
				c.Header(headerIdempotencyKey, fp)
				c.Header(headerIdempotencyStatus, "hit")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			log.WithField("fingerprint", fp).Warn("dropping unreadable idempotency record")
			store.DropResponse(ctx, userID, fp)
		}

		if !store.AcquireLock(ctx, userID, fp, lockTTL) {
			c.Header("Retry-After", strconv.Itoa(int(lockTTL.Seconds())))
			abortError(c, http.StatusConflict, "CONFLICT", "duplicate_request_in_progress")
			return
		}
		defer store.ReleaseLock(ctx, userID, fp)

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header(headerIdempotencyKey, fp)
		c.Header(headerIdempotencyStatus, "miss")

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			record, err := json.Marshal(storedResponse{
				Status:      status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.buf.Bytes(),
			})
			if err == nil {
				store.StoreResponse(ctx, userID, fp, record, ttl)
			}
		}
	}
}

func fingerprint(userID, method, path string, body []byte) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%s:%s", userID, method, path, body))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
