package pool

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// ListPoolsHandler 返回所有启用中的盲盒池，按展示顺序排列。
func ListPoolsHandler(c *gin.Context) {
	pools, err := ActivePools(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取盲盒池列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pools": pools})
}

// maskedItem 是隐藏款在预览接口中的打码形态
type maskedItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rarity      Rarity  `json:"rarity"`
	ImageURL    string  `json:"image_url"`
	DropRate    float64 `json:"drop_rate"`
}

// PreviewHandler 返回单个盲盒池的预览信息。
// 普通款完整展示；隐藏款只展示打码后的占位信息，保留悬念。
func PreviewHandler(c *gin.Context) {
	poolID, err := strconv.ParseUint(c.Param("poolId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的盲盒池ID"})
		return
	}

	p, err := GetPool(database.DB, uint(poolID))
	if err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrPoolNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取盲盒池失败"})
		return
	}

	items, err := PoolItems(database.DB, uint(poolID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取池内物品失败"})
		return
	}

	normalItems := make([]Item, 0, len(items))
	hiddenItems := make([]maskedItem, 0)
	var totalWeight, hiddenWeight float64
	for _, it := range items {
		totalWeight += it.DropRate
		if it.Rarity == RarityHidden {
			hiddenWeight += it.DropRate
			hiddenItems = append(hiddenItems, maskedItem{
				ID:          it.ID,
				Name:        "神秘隐藏款",
				Description: "？？？",
				Rarity:      RarityHidden,
				ImageURL:    "/images/hidden-placeholder.png",
				DropRate:    it.DropRate,
			})
		} else {
			normalItems = append(normalItems, it)
		}
	}

	// 隐藏款综合概率按真实权重总和归一化后展示
	hiddenProbability := 0.0
	if totalWeight > 0 {
		hiddenProbability = hiddenWeight / totalWeight * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pool":    p,
		"preview": gin.H{
			"normalItems":       normalItems,
			"hiddenItems":       hiddenItems,
			"totalItems":        len(items),
			"hiddenProbability": hiddenProbability,
		},
	})
}
