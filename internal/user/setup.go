package user

import (
	"fmt"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
)

// WarmupCache 从SQLite加载所有已注册用户的ID，并预热到Redis的Set中
func WarmupCache() error {
	if !database.IsRedisHealthy() {
		fmt.Println("Redis不可用，跳过用户缓存预热。")
		return nil
	}

	var ids []uint
	// 1. 从SQLite读取所有用户的ID
	if err := database.DB.Model(&User{}).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取用户ID: %w", err)
	}

	if len(ids) == 0 {
		fmt.Println("无现有用户数据，无需预热用户缓存。")
		return nil
	}

	// 2. 将ID转换为interface{}切片以用于SAdd
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}

	// 3. 使用Pipeline批量将所有ID添加到Redis的Set中
	pipe := database.RDB.Pipeline()
	// 先清空旧的缓存，确保数据一致性
	pipe.Del(database.Ctx, KnownUsersKey)
	// 一次性添加所有成员
	pipe.SAdd(database.Ctx, KnownUsersKey, members...)

	_, err := pipe.Exec(database.Ctx)
	if err != nil {
		return fmt.Errorf("预热用户ID到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户ID到Redis。\n", len(ids))
	return nil
}

// PrimeModule 是user模块的初始化总入口。
// 表结构由platform/migration统一管理，这里只负责缓存预热。
func PrimeModule() error {
	return WarmupCache()
}
