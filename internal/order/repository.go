package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"gorm.io/gorm"
)

// ErrStorage 表示订单账本的底层存储操作失败。
// 账本写入失败时不会产生任何部分状态，调用方可原样重试。
var ErrStorage = errors.New("订单存储失败")

// ErrOrderNotFound 表示引用的订单不存在
var ErrOrderNotFound = errors.New("订单不存在")

// Ledger 是基于GORM的订单账本，实现draw包对账本的依赖接口。
type Ledger struct {
	db *gorm.DB
}

// NewLedger 创建一个基于指定数据库连接的订单账本。
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// recordAttempts 是SQLite短暂锁冲突时的最大写入尝试次数
const recordAttempts = 3

// RecordDraw 向账本追加一条抽取记录并返回它。
// 调用方负责在写入前完成用户和盲盒池的存在性校验；
// 账本本身只负责原子追加。SQLite的busy/locked错误做有界重试，
// 其余错误立即作为存储失败返回。
func (l *Ledger) RecordDraw(userID, poolID, itemID uint) (*Order, error) {
	var lastErr error
	for attempt := 0; attempt < recordAttempts; attempt++ {
		o := Order{
			UserID: userID,
			PoolID: poolID,
			ItemID: itemID,
		}
		if err := l.db.Create(&o).Error; err != nil {
			lastErr = err
			if !database.IsRetryableError(err) {
				break
			}
			time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
			continue
		}
		return &o, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrStorage, lastErr)
}

// Detail 是一条连接了盲盒池和物品信息的订单记录
type Detail struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	PoolID    uint      `json:"pool_id"`
	ItemID    uint      `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`

	PoolName  string  `json:"pool_name"`
	PoolImage string  `json:"pool_image"`
	Price     float64 `json:"price"`

	// 物品信息来自LEFT JOIN：物品被删除后这些字段为空串
	ItemName  string `json:"item_name"`
	ItemImage string `json:"item_image"`
	Rarity    string `json:"rarity"`
}

// detailQuery 构造订单、盲盒池、物品三表连接的基础查询。
// 物品用LEFT JOIN：被删除物品的订单仍然要出现在历史记录里。
func detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("orders").
		Select(`orders.id, orders.user_id, orders.pool_id, orders.item_id, orders.created_at,
			pools.name AS pool_name, pools.image_url AS pool_image, pools.price AS price,
			COALESCE(items.name, '') AS item_name,
			COALESCE(items.image_url, '') AS item_image,
			COALESCE(items.rarity, '') AS rarity`).
		Joins("JOIN pools ON pools.id = orders.pool_id").
		Joins("LEFT JOIN items ON items.id = orders.item_id")
}

// ListByUser 返回指定用户的全部抽取历史，最新的在前。
// 同一时刻的记录按账本ID降序，保证顺序稳定。
func ListByUser(db *gorm.DB, userID uint) ([]Detail, error) {
	var details []Detail
	err := detailQuery(db).
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").Order("orders.id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return details, nil
}

// BasicStats 是单个用户的基础消费统计
type BasicStats struct {
	TotalOrders int64   `json:"totalOrders"`
	TotalSpent  float64 `json:"totalSpent"`
	UniquePools int64   `json:"uniquePools"`
}

// RarityCount 是按稀有度分组的订单计数
type RarityCount struct {
	Rarity string `json:"rarity"`
	Count  int64  `json:"count"`
}

// UserBasicStats 从账本聚合单个用户的总抽取数、总花费和涉及的盲盒池数。
// 统计始终从账本现场计算，不依赖任何缓存。
func UserBasicStats(db *gorm.DB, userID uint) (*BasicStats, error) {
	var stats BasicStats
	err := db.Table("orders").
		Select(`COUNT(orders.id) AS total_orders,
			COALESCE(SUM(pools.price), 0) AS total_spent,
			COUNT(DISTINCT orders.pool_id) AS unique_pools`).
		Joins("JOIN pools ON pools.id = orders.pool_id").
		Where("orders.user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &stats, nil
}

// UserRarityStats 按稀有度聚合单个用户的抽取分布。
// 物品已被删除的订单无法判定稀有度，不计入任何档位。
func UserRarityStats(db *gorm.DB, userID uint) ([]RarityCount, error) {
	var counts []RarityCount
	err := db.Table("orders").
		Select("items.rarity AS rarity, COUNT(orders.id) AS count").
		Joins("JOIN items ON items.id = orders.item_id").
		Where("orders.user_id = ?", userID).
		Group("items.rarity").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return counts, nil
}

// RecentDraws 返回指定用户最近limit次抽取。
func RecentDraws(db *gorm.DB, userID uint, limit int) ([]Detail, error) {
	var details []Detail
	err := detailQuery(db).
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").Order("orders.id DESC").
		Limit(limit).
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return details, nil
}

// LuckyDraws 返回指定用户抽中的全部隐藏款记录，最新的在前。
func LuckyDraws(db *gorm.DB, userID uint) ([]Detail, error) {
	var details []Detail
	err := detailQuery(db).
		Where("orders.user_id = ? AND items.rarity = ?", userID, "hidden").
		Order("orders.created_at DESC").Order("orders.id DESC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return details, nil
}

// AdminDelete 物理删除一条订单记录。
// 这是账本只追加约定之外唯一的特权出口。
func AdminDelete(db *gorm.DB, id uint) error {
	result := db.Delete(&Order{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
