package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktime/internal/core/domain"
	"tasktime/pkg/apierrors"
)

const (
	HeaderAccountID    = "X-Account-ID"
	HeaderUserID       = "X-User-ID"
	HeaderStatusFilter = "X-Task-Status-Filter"

	sessionKey = "session"
)

// SessionMiddleware builds the caller session from the identity headers set by the
// authenticating proxy. The status filter comes from the status query parameter,
// falling back to the X-Task-Status-Filter header.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := strconv.ParseUint(c.GetHeader(HeaderAccountID), 10, 64)
		if err != nil || accountID == 0 {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingAccount, GetLang(c)),
			)
			return
		}

		// User id is optional; tasks created without one are attributed to user 0.
		userID, _ := strconv.ParseUint(c.GetHeader(HeaderUserID), 10, 64)

		statusFilter, ok := c.GetQuery("status")
		if !ok {
			statusFilter = c.GetHeader(HeaderStatusFilter)
		}

		c.Set(sessionKey, domain.Session{
			AccountID:    accountID,
			UserID:       userID,
			StatusFilter: domain.ParseStatusSet(statusFilter),
		})
		c.Next()
	}
}

func GetSession(c *gin.Context) (domain.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return domain.Session{}, false
	}
	session, ok := value.(domain.Session)
	return session, ok
}
