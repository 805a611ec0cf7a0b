package user

import "gorm.io/gorm"

// Role 定义了用户角色的枚举类型
type Role string

const (
	// RoleUser 是普通用户，参与抽取和排行
	RoleUser Role = "user"
	// RoleAdmin 是管理员，可以编辑盲盒池和物品，但被排除在所有排行榜之外
	RoleAdmin Role = "admin"
)

// User 定义了用户在SQLite数据库中的持久化模型。
type User struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Username 是用户的唯一登录名
	Username string `gorm:"uniqueIndex;not null;type:varchar(64)" json:"username"`

	// Password 存储bcrypt哈希后的密码，永远不出现在JSON响应中
	Password string `gorm:"not null" json:"-"`

	// Role 是用户角色，排行榜聚合在查询边界过滤掉admin
	Role Role `gorm:"not null;default:user" json:"role"`
}
