package util

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "smartschool_session"

// SetSession 由 SessionMiddleware 写入
func SetSession(c *gin.Context, session string) {
	c.Set(sessionContextKey, session)
}

func GetSessionFromContext(c *gin.Context) string {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// HashSession 会话值不直接出现在缓存键和数据库中
func HashSession(session string) string {
	sum := sha256.Sum256([]byte(session))
	return hex.EncodeToString(sum[:])
}
