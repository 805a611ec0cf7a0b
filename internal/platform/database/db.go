package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/MoguBox/blindbox-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的GORM数据库实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 初始化与SQLite数据库的连接
func InitDB(cfg config.SqliteConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	// 连接到SQLite数据库，启用外键约束以保护订单的引用完整性
	DB, err = gorm.Open(sqlite.Open(cfg.Path+"?_foreign_keys=on"), &gorm.Config{
		Logger: newLogger,
	})

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}

// IsRetryableError 判断一个SQLite错误是否值得重试。
// SQLite在并发写入时可能返回 busy / locked，这类错误短暂重试即可恢复。
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
