package ranking

import (
	"net/http"
	"strconv"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// LuckHandler 返回欧皇榜。
func LuckHandler(c *gin.Context) {
	entries, err := LuckLeaderboard(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取欧皇榜失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rankings": entries})
}

// UnluckHandler 返回非酋榜。
func UnluckHandler(c *gin.Context) {
	entries, err := UnluckLeaderboard(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取非酋榜失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rankings": entries})
}

// MyRankHandler 返回指定用户的个人统计和榜单名次。
func MyRankHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	rank, err := MyRank(database.DB, uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取个人排名失败"})
		return
	}
	c.JSON(http.StatusOK, rank)
}

// StatsHandler 返回全服运气统计。
func StatsHandler(c *gin.Context) {
	stats, err := Stats(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取全服统计失败"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecentLuckyHandler 返回全服最新隐藏款动态。
func RecentLuckyHandler(c *gin.Context) {
	events, err := RecentLucky(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取最新动态失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
