package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MoguBox/blindbox-backend/internal/platform/config"
	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// parseUserIDParam 解析路径中的用户ID参数
func parseUserIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return 0, false
	}
	return uint(id), true
}

// UserOrdersHandler 返回指定用户的全部抽取历史。
func UserOrdersHandler(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	orders, err := ListByUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取订单历史失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UserStatsHandler 返回指定用户的消费统计和稀有度分布。
// 所有数字都由订单账本现场聚合得出。
func UserStatsHandler(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	basic, err := UserBasicStats(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户统计失败"})
		return
	}

	rarity, err := UserRarityStats(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取稀有度统计失败"})
		return
	}

	recent, err := RecentDraws(database.DB, userID, config.Cfg.Draw.RecentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取最近抽取失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"basicStats":  basic,
		"rarityStats": rarity,
		"recentDraws": recent,
	})
}

// UserLuckyHandler 返回指定用户抽中的全部隐藏款。
func UserLuckyHandler(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	lucky, err := LuckyDraws(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取隐藏款记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"luckyDraws": lucky})
}

// AdminDeleteOrderHandler 物理删除一条订单记录（管理员特权操作）。
func AdminDeleteOrderHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的订单ID"})
		return
	}

	if err := AdminDelete(database.DB, uint(id)); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrOrderNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除订单失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
