package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/MoguBox/blindbox-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// AuthHeader 是携带登录令牌的请求头
	AuthHeader = "Authorization"
	// UserIDKey 是Gin上下文中存放已验证用户ID的键
	UserIDKey = "userID"

	// MaxTokenAge 是登录令牌的有效时长，超过后必须重新登录
	MaxTokenAge = 24 * time.Hour
)

// RequireAdminMiddleware 验证请求头中的登录令牌，并要求其角色为admin。
// 管理接口（盲盒池和物品的增删改）必须挂载此中间件。
func RequireAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := strings.TrimPrefix(c.GetHeader(AuthHeader), "Bearer ")
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少登录令牌"})
			return
		}

		payload, err := token.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "登录令牌无效"})
			return
		}

		if payload.Age() > MaxTokenAge {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "登录令牌已过期，请重新登录"})
			return
		}

		if payload.Role != string(RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}

		c.Set(UserIDKey, payload.UserID)
		c.Next()
	}
}
