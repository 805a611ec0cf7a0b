package pool

import "gorm.io/gorm"

// Rarity 定义了物品稀有度的枚举类型。
// 本系统固定使用两档稀有度，运气值权重表与之对应。
type Rarity string

const (
	// RarityNormal 表示普通款
	RarityNormal Rarity = "normal"
	// RarityHidden 表示隐藏款
	RarityHidden Rarity = "hidden"
)

// HiddenDropRateThreshold 是判定隐藏款的掉落权重阈值。
// 管理员录入物品时，声明权重低于该值的物品被归类为隐藏款。
const HiddenDropRateThreshold = 0.1

// Pool 定义了盲盒池在SQLite数据库中的持久化模型
type Pool struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Name 是盲盒池的展示名称
	Name string `gorm:"not null" json:"name"`

	// Description 是盲盒池的描述文字
	Description string `json:"description"`

	// ImageURL 是盲盒池封面图的地址
	ImageURL string `json:"image_url"`

	// Price 是单次抽取的价格，用于订单消费统计
	Price float64 `json:"price"`

	// IsActive 控制盲盒池是否在首页展示。
	// 停用不等于删除：存在订单引用的盲盒池永远不会被物理删除。
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// DisplayOrder 是首页展示顺序，越小越靠前
	DisplayOrder int `gorm:"not null;default:0" json:"display_order"`
}

// Item 定义了盲盒池中单个物品的持久化模型
type Item struct {
	gorm.Model

	// PoolID 是物品所属盲盒池的ID，每个物品恰好属于一个池
	PoolID uint `gorm:"index;not null" json:"pool_id"`

	// Name 是物品的展示名称
	Name string `gorm:"not null" json:"name"`

	// Description 是物品的描述文字
	Description string `json:"description"`

	// ImageURL 是物品图片的地址
	ImageURL string `json:"image_url"`

	// Rarity 是物品的稀有度档位
	Rarity Rarity `gorm:"not null;default:normal" json:"rarity"`

	// DropRate 是管理员声明的相对抽取权重。
	// 它只表达池内的相对可能性，不要求全池权重之和等于1；
	// 抽取前由归一化器按真实总和缩放。
	DropRate float64 `gorm:"not null;default:0" json:"drop_rate"`
}
