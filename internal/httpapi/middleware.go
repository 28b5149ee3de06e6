package httpapi

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/store"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-Id"
	principalKey    = "principal"
)

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	CustomerID int64
	Username   string
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// auth resolves an optional bearer token into a Principal. Requests without
// a token proceed unauthenticated; a token that does not resolve is rejected
// outright rather than silently downgraded to guest.
func auth(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		customer, err := store.ResolveSession(c.Request.Context(), db, token)
		if err != nil {
			if errors.Is(err, database.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(principalKey, Principal{CustomerID: customer.ID, Username: customer.Email})
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
