package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// AccountIDKey is the gin context key holding the authenticated account
	// id for the current request.
	AccountIDKey = "account_id"

	// accountIDHeader is asserted by the upstream auth collaborator after it
	// validated the caller's token. This service never sees the token itself.
	accountIDHeader = "X-Account-Id"
)

// Identity extracts the upstream-asserted account identity from the request
// headers and stashes it in the gin context. Requests without an identity
// are rejected before reaching any handler.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetHeader(accountIDHeader)
		if accountID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "missing account identity",
			})
			c.Abort()
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Next()
	}
}

// AccountID returns the account id stashed by Identity, empty if absent.
func AccountID(c *gin.Context) string {
	return c.GetString(AccountIDKey)
}
