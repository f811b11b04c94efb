package middleware

import (
	"net/http"
	"time"

	"github.com/aurum/backoffice/internal/domain/shared"
	"github.com/aurum/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client-chosen submission key
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL is how long a submission key stays claimed
const DefaultIdempotencyTTL = 24 * time.Hour

// Idempotency rejects replays of mutating requests that carry an
// Idempotency-Key header. Requests without the header pass through
// untouched. The key is claimed before the handler runs, so a retry of
// a request that failed mid-flight is also rejected; clients retry with
// a fresh key after inspecting the document state.
func Idempotency(store shared.IdempotencyStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		firstSeen, err := store.MarkProcessed(c.Request.Context(), key, DefaultIdempotencyTTL)
		if err != nil {
			// Store outage must not block writes. Log and fall through.
			logger.Warn("idempotency store unavailable",
				zap.String("key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !firstSeen {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				"Request with this idempotency key was already processed",
			))
			return
		}

		c.Next()
	}
}
