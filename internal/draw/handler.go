package draw

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/MoguBox/blindbox-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// DrawRequestBody 是抽取接口的请求体
type DrawRequestBody struct {
	UserID uint `json:"userId" binding:"required"`
}

// DrawHandler 处理单次抽取请求。
func DrawHandler(c *gin.Context) {
	handleDraw(c, defaultService)
}

// handleDraw 用指定的抽取服务处理请求。
// 校验类失败返回400；目录配置异常和存储失败返回500。
func handleDraw(c *gin.Context, svc *Service) {
	poolID, err := strconv.ParseUint(c.Param("poolId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的盲盒池ID"})
		return
	}

	var body DrawRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少用户ID"})
		return
	}

	result, err := svc.Draw(body.UserID, uint(poolID))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": user.ErrUserNotFound.Error()})
		case errors.Is(err, pool.ErrPoolNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": pool.ErrPoolNotFound.Error()})
		case errors.Is(err, ErrEmptyPool):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrEmptyPool.Error()})
		case errors.Is(err, pool.ErrInvalidWeight):
			// 负权重本应在管理员录入时被拦下，抽取时撞上说明目录数据异常
			c.JSON(http.StatusInternalServerError, gin.H{"error": "盲盒池配置异常，请联系管理员"})
		case errors.Is(err, order.ErrStorage):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "订单写入失败，请稍后重试"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "抽取失败，请稍后重试"})
		}
		return
	}

	message := "获得新物品！"
	if result.IsHidden {
		message = "恭喜获得隐藏款！"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  message,
		"isHidden": result.IsHidden,
		"orderId":  result.OrderID,
		"pool": gin.H{
			"id":          result.Pool.ID,
			"name":        result.Pool.Name,
			"description": result.Pool.Description,
		},
		"item": gin.H{
			"id":          result.Item.ID,
			"name":        result.Item.Name,
			"rarity":      result.Item.Rarity,
			"image_url":   result.Item.ImageURL,
			"description": result.Item.Description,
			"drop_rate":   result.Item.DropRate,
		},
		"created_at": result.CreatedAt,
	})
}
