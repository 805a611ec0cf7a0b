package startup

import (
	"fmt"

	"github.com/MoguBox/blindbox-backend/internal/draw"
	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/platform/config"
	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/MoguBox/blindbox-backend/internal/platform/migration"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/MoguBox/blindbox-backend/internal/ranking"
	"github.com/MoguBox/blindbox-backend/internal/user"
	"gorm.io/gorm"
)

// Migrations 是本应用的全部结构迁移，按版本号升序排列。
// 迁移只向前执行：已达到的版本永远不会被回退或重放。
var Migrations = []migration.Migration{
	{
		Version: 1,
		Name:    "创建用户、盲盒池、物品和订单表",
		Run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&user.User{}, &pool.Pool{}, &pool.Item{}, &order.Order{})
		},
	},
	{
		Version: 2,
		Name:    "按掉落权重回填历史物品的稀有度",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`
				UPDATE items SET rarity = CASE
					WHEN drop_rate < ? THEN 'hidden'
					ELSE 'normal'
				END
				WHERE rarity IS NULL OR rarity = ''`, pool.HiddenDropRateThreshold).Error
		},
	},
}

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := migration.Apply(database.DB, Migrations); err != nil {
		return err
	}

	ranking.Configure(config.Cfg.Ranking)

	if err := user.PrimeModule(); err != nil {
		return err
	}
	if err := draw.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis缓存。
// 本应用唯一的Redis缓存是已知用户ID集合，SQLite始终是事实来源，
// 因此重建只需要重新预热这一个集合。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")
	if err := user.WarmupCache(); err != nil {
		return err
	}
	fmt.Println("缓存热重建完成。")
	return nil
}
