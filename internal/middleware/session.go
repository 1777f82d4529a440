package middleware

import (
	"better_results_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware 取出要转发给 Smartschool 的会话：优先请求头，其次 cookie
func SessionMiddleware(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := strings.TrimSpace(c.GetHeader(util.SessionHeader))

		if session == "" && cookieName != "" {
			if v, err := c.Cookie(cookieName); err == nil {
				session = strings.TrimSpace(v)
			}
		}

		if session == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetSession(c, session)
		c.Next()
	}
}
