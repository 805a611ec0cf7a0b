package pool

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrPoolNotFound 表示引用的盲盒池不存在
	ErrPoolNotFound = errors.New("盲盒池不存在")
	// ErrItemNotFound 表示引用的物品不存在
	ErrItemNotFound = errors.New("物品不存在")
	// ErrInvalidWeight 表示物品声明了负的抽取权重。
	// 该错误面向录入数据的管理员，而不是抽盒的用户。
	ErrInvalidWeight = errors.New("掉落权重不能为负数")
	// ErrPoolReferenced 表示盲盒池已被订单引用，不允许物理删除
	ErrPoolReferenced = errors.New("盲盒池已被订单引用，无法删除")
)

// ActivePools 返回所有启用中的盲盒池，按展示顺序升序排列。
// 展示顺序相同时按ID升序，保证列表顺序稳定。
func ActivePools(db *gorm.DB) ([]Pool, error) {
	var pools []Pool
	err := db.Where("is_active = ?", true).
		Order("display_order asc").Order("id asc").
		Find(&pools).Error
	if err != nil {
		return nil, fmt.Errorf("查询盲盒池列表失败: %w", err)
	}
	return pools, nil
}

// AllPools 返回所有盲盒池（含停用的），供管理后台使用。
func AllPools(db *gorm.DB) ([]Pool, error) {
	var pools []Pool
	err := db.Order("display_order asc").Order("id asc").Find(&pools).Error
	if err != nil {
		return nil, fmt.Errorf("查询盲盒池列表失败: %w", err)
	}
	return pools, nil
}

// GetPool 返回指定ID的盲盒池。
func GetPool(db *gorm.DB, id uint) (*Pool, error) {
	var p Pool
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("查询盲盒池失败: %w", err)
	}
	return &p, nil
}

// PoolItems 返回指定盲盒池内的全部物品，按ID升序排列。
// 抽取算法依赖这个固定顺序：同一份数据必须产出同一份分布。
func PoolItems(db *gorm.DB, poolID uint) ([]Item, error) {
	var items []Item
	err := db.Where("pool_id = ?", poolID).Order("id asc").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询池内物品失败: %w", err)
	}
	return items, nil
}

// GetItem 返回指定ID的物品。
func GetItem(db *gorm.DB, id uint) (*Item, error) {
	var it Item
	if err := db.First(&it, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("查询物品失败: %w", err)
	}
	return &it, nil
}

// orderReferenceCount 统计订单账本中引用指定盲盒池的记录数。
// 直接查orders表，避免pool包反向依赖order包。
func orderReferenceCount(db *gorm.DB, poolID uint) (int64, error) {
	var count int64
	if err := db.Table("orders").Where("pool_id = ?", poolID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计订单引用失败: %w", err)
	}
	return count, nil
}
