package pool

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的数字ID参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID参数"})
		return 0, false
	}
	return uint(id), true
}

// AdminListPoolsHandler 返回所有盲盒池（含停用的）及其物品数量。
func AdminListPoolsHandler(c *gin.Context) {
	pools, err := AllPools(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取盲盒池列表失败"})
		return
	}

	type poolWithCount struct {
		Pool
		ItemCount int64 `json:"item_count"`
	}
	result := make([]poolWithCount, 0, len(pools))
	for _, p := range pools {
		var count int64
		if err := database.DB.Model(&Item{}).Where("pool_id = ?", p.ID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "统计池内物品失败"})
			return
		}
		result = append(result, poolWithCount{Pool: p, ItemCount: count})
	}
	c.JSON(http.StatusOK, gin.H{"pools": result})
}

// AdminCreatePoolHandler 创建盲盒池。
func AdminCreatePoolHandler(c *gin.Context) {
	var input PoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "盲盒池名称不能为空"})
		return
	}

	p, err := CreatePool(database.DB, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建盲盒池失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "创建成功", "pool": p})
}

// AdminUpdatePoolHandler 更新盲盒池。
func AdminUpdatePoolHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "poolId")
	if !ok {
		return
	}
	var input PoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "盲盒池名称不能为空"})
		return
	}

	p, err := UpdatePool(database.DB, id, input)
	if err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrPoolNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新盲盒池失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功", "pool": p})
}

// AdminDeletePoolHandler 删除盲盒池。
// 已有订单引用的池返回400，提示管理员改用停用。
func AdminDeletePoolHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "poolId")
	if !ok {
		return
	}

	if err := DeletePool(database.DB, id); err != nil {
		switch {
		case errors.Is(err, ErrPoolNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrPoolNotFound.Error()})
		case errors.Is(err, ErrPoolReferenced):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrPoolReferenced.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "删除盲盒池失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// AdminListItemsHandler 返回指定盲盒池内的全部物品（不打码）。
func AdminListItemsHandler(c *gin.Context) {
	poolID, ok := parseIDParam(c, "poolId")
	if !ok {
		return
	}
	if _, err := GetPool(database.DB, poolID); err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrPoolNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取盲盒池失败"})
		return
	}

	items, err := PoolItems(database.DB, poolID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取池内物品失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AdminCreateItemHandler 向盲盒池添加物品。
func AdminCreateItemHandler(c *gin.Context) {
	poolID, ok := parseIDParam(c, "poolId")
	if !ok {
		return
	}
	var input ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "物品名称不能为空"})
		return
	}

	it, err := CreateItem(database.DB, poolID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidWeight):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidWeight.Error()})
		case errors.Is(err, ErrPoolNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrPoolNotFound.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "创建物品失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "创建成功", "item": it})
}

// AdminUpdateItemHandler 更新物品。
func AdminUpdateItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var input ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "物品名称不能为空"})
		return
	}

	it, err := UpdateItem(database.DB, id, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidWeight):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidWeight.Error()})
		case errors.Is(err, ErrItemNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrItemNotFound.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新物品失败"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功", "item": it})
}

// AdminDeleteItemHandler 删除物品。
func AdminDeleteItemHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := DeleteItem(database.DB, id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrItemNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除物品失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
