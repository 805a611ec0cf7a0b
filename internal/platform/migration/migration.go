package migration

import (
	"fmt"

	"github.com/MoguBox/blindbox-backend/internal/platform/metadata"
	"gorm.io/gorm"
)

// Migration 描述一次前向的、不可回退的表结构变更。
// Version 必须严格递增；已应用的版本号持久化在metadata表中，
// 重复启动时只会应用比当前版本更新的迁移。
type Migration struct {
	Version uint
	Name    string
	Run     func(tx *gorm.DB) error
}

// Apply 按版本号顺序应用所有尚未执行的迁移。
// 每个迁移在独立的事务中执行，版本号的推进和变更本身一起提交。
func Apply(db *gorm.DB, migrations []Migration) error {
	// metadata表自身的结构必须先就绪
	if err := metadata.PrimeDB(db); err != nil {
		return err
	}

	current, err := metadata.GetSchemaVersion(db)
	if err != nil {
		return fmt.Errorf("无法读取当前数据库版本: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return metadata.SetSchemaVersion(tx, m.Version)
		})
		if err != nil {
			return fmt.Errorf("迁移 v%d (%s) 失败: %w", m.Version, m.Name, err)
		}
		fmt.Printf("数据库迁移 v%d (%s) 应用成功。\n", m.Version, m.Name)
		current = m.Version
	}
	return nil
}
