package user_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MoguBox/blindbox-backend/internal/user"
	"github.com/MoguBox/blindbox-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", user.RequireAdminMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetUint(user.UserIDKey)})
	})
	return r
}

func getWithToken(r *gin.Engine, tokenStr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if tokenStr != "" {
		req.Header.Set(user.AuthHeader, "Bearer "+tokenStr)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, role string, issuedAt time.Time) string {
	t.Helper()
	tokenStr, err := token.Sign(token.TokenPayload{
		UserID:   7,
		Role:     role,
		Nonce:    "n",
		IssuedAt: issuedAt.Unix(),
	})
	require.NoError(t, err)
	return tokenStr
}

func TestRequireAdminMiddleware(t *testing.T) {
	token.GenerateSecretKey()
	r := newAdminRouter()

	// 缺少令牌
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "").Code)

	// 非法令牌
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "not-a-token").Code)

	// 非管理员角色
	userToken := signToken(t, string(user.RoleUser), time.Now())
	assert.Equal(t, http.StatusForbidden, getWithToken(r, userToken).Code)

	// 合法的管理员令牌放行
	adminToken := signToken(t, string(user.RoleAdmin), time.Now())
	assert.Equal(t, http.StatusOK, getWithToken(r, adminToken).Code)
}

func TestRequireAdminMiddleware_ExpiredToken(t *testing.T) {
	token.GenerateSecretKey()
	r := newAdminRouter()

	// 签发时间超过有效时长的令牌必须重新登录，即使签名有效
	stale := signToken(t, string(user.RoleAdmin), time.Now().Add(-user.MaxTokenAge-time.Minute))
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, stale).Code)

	// 尚在有效期内的令牌不受影响
	fresh := signToken(t, string(user.RoleAdmin), time.Now().Add(-time.Hour))
	assert.Equal(t, http.StatusOK, getWithToken(r, fresh).Code)
}
