package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequestBody 定义了注册和登录接口共用的请求体结构
type AuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler 处理用户注册
func RegisterHandler(c *gin.Context) {
	var body AuthRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户名或密码不能为空"})
		return
	}

	userID, err := Register(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrUsernameTaken.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器错误，请稍后重试"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "注册成功", "userId": userID})
}

// LoginHandler 处理用户登录，成功时返回用户信息和签名令牌
func LoginHandler(c *gin.Context) {
	var body AuthRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "用户名或密码不能为空"})
		return
	}

	u, tokenStr, err := Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredential.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"userId":  u.ID,
		"role":    u.Role,
		"token":   tokenStr,
	})
}
