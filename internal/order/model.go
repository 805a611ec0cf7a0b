package order

import "time"

// Order 是订单账本中的一条抽取记录。
// 账本只追加：记录一经写入不再修改，也没有软删除列。
// 管理员清理是独立的特权操作，走物理删除。
type Order struct {
	// ID 由SQLite自增主键生成，同一账本内单调递增，
	// 可直接作为抽取先后顺序的排序依据。
	ID uint `gorm:"primarykey" json:"id"`

	// UserID 是抽取用户的ID
	UserID uint `gorm:"index;not null" json:"user_id"`

	// PoolID 是被抽取的盲盒池ID。
	// 被订单引用的池不允许物理删除，这个引用始终可解析。
	PoolID uint `gorm:"index;not null" json:"pool_id"`

	// ItemID 是抽中物品的ID。
	// 物品允许事后删除，届时该引用退化为纯展示性信息。
	ItemID uint `gorm:"not null" json:"item_id"`

	// CreatedAt 是抽取时间
	CreatedAt time.Time `json:"created_at"`
}
