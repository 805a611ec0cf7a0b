package pool

import (
	"fmt"

	"gorm.io/gorm"
)

// PoolInput 是创建和更新盲盒池的参数
type PoolInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	Price        float64 `json:"price"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder int     `json:"display_order"`
}

// ItemInput 是创建和更新物品的参数
type ItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	DropRate    float64 `json:"drop_rate"`
}

// classify 根据声明的掉落权重推导稀有度档位。
func classify(dropRate float64) Rarity {
	if dropRate < HiddenDropRateThreshold {
		return RarityHidden
	}
	return RarityNormal
}

// CreatePool 创建一个新的盲盒池。
func CreatePool(db *gorm.DB, input PoolInput) (*Pool, error) {
	p := Pool{
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		Price:        input.Price,
		IsActive:     true,
		DisplayOrder: input.DisplayOrder,
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("创建盲盒池失败: %w", err)
	}
	return &p, nil
}

// UpdatePool 整体更新一个盲盒池的可编辑字段。
func UpdatePool(db *gorm.DB, id uint, input PoolInput) (*Pool, error) {
	p, err := GetPool(db, id)
	if err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.Description = input.Description
	p.ImageURL = input.ImageURL
	p.Price = input.Price
	p.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if err := db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("更新盲盒池失败: %w", err)
	}
	return p, nil
}

// DeletePool 物理删除一个盲盒池及其全部物品。
// 已被订单引用的盲盒池不允许删除，只能通过停用下架，
// 否则历史订单会失去池名和价格等展示信息。
func DeletePool(db *gorm.DB, id uint) error {
	if _, err := GetPool(db, id); err != nil {
		return err
	}

	refs, err := orderReferenceCount(db, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrPoolReferenced
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("pool_id = ?", id).Delete(&Item{}).Error; err != nil {
			return fmt.Errorf("删除池内物品失败: %w", err)
		}
		if err := tx.Unscoped().Delete(&Pool{}, id).Error; err != nil {
			return fmt.Errorf("删除盲盒池失败: %w", err)
		}
		return nil
	})
}

// CreateItem 向指定盲盒池添加一个物品。
// 负权重在写入前被拒绝，稀有度由权重阈值推导。
func CreateItem(db *gorm.DB, poolID uint, input ItemInput) (*Item, error) {
	if input.DropRate < 0 {
		return nil, ErrInvalidWeight
	}
	if _, err := GetPool(db, poolID); err != nil {
		return nil, err
	}

	it := Item{
		PoolID:      poolID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Rarity:      classify(input.DropRate),
		DropRate:    input.DropRate,
	}
	if err := db.Create(&it).Error; err != nil {
		return nil, fmt.Errorf("创建物品失败: %w", err)
	}
	return &it, nil
}

// UpdateItem 整体更新一个物品的可编辑字段，稀有度随权重重新推导。
func UpdateItem(db *gorm.DB, id uint, input ItemInput) (*Item, error) {
	if input.DropRate < 0 {
		return nil, ErrInvalidWeight
	}
	it, err := GetItem(db, id)
	if err != nil {
		return nil, err
	}

	it.Name = input.Name
	it.Description = input.Description
	it.ImageURL = input.ImageURL
	it.DropRate = input.DropRate
	it.Rarity = classify(input.DropRate)
	if err := db.Save(it).Error; err != nil {
		return nil, fmt.Errorf("更新物品失败: %w", err)
	}
	return it, nil
}

// DeleteItem 物理删除一个物品。
// 物品允许在有订单引用时删除：历史订单保留物品ID作为纯展示性引用，
// 统计口径中这类订单不再计入任何稀有度档位。
func DeleteItem(db *gorm.DB, id uint) error {
	if _, err := GetItem(db, id); err != nil {
		return err
	}
	if err := db.Unscoped().Delete(&Item{}, id).Error; err != nil {
		return fmt.Errorf("删除物品失败: %w", err)
	}
	return nil
}

// Catalog 是基于GORM的目录读取器，实现draw包对目录的依赖接口。
type Catalog struct {
	db *gorm.DB
}

// NewCatalog 创建一个基于指定数据库连接的目录读取器。
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// GetPool 返回指定ID的盲盒池。
func (c *Catalog) GetPool(id uint) (*Pool, error) {
	return GetPool(c.db, id)
}

// PoolItems 返回指定盲盒池内的全部物品，按ID升序。
func (c *Catalog) PoolItems(poolID uint) ([]Item, error) {
	return PoolItems(c.db, poolID)
}
