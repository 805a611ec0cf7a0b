package user

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/MoguBox/blindbox-backend/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- 错误定义 ---

var (
	// ErrUserNotFound 表示引用的用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrUsernameTaken 表示注册时用户名已被占用
	ErrUsernameTaken = errors.New("用户名已被注册")
	// ErrInvalidCredential 表示登录时用户名或密码错误
	ErrInvalidCredential = errors.New("用户名或密码错误")
)

// Register 创建一个新用户并返回其ID。
// 密码使用bcrypt哈希后存储。
func Register(username, password string) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("无法哈希密码: %w", err)
	}

	newUser := User{
		Username: username,
		Password: string(hash),
		Role:     RoleUser,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("无法在SQLite中创建新用户: %w", err)
	}

	// 尽力同步到Redis缓存，失败不影响注册结果
	if database.IsRedisHealthy() {
		if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, newUser.ID).Err(); err != nil {
			fmt.Printf("警告: 无法将新用户 %d 加入Redis缓存: %v\n", newUser.ID, err)
		}
	}

	return newUser.ID, nil
}

// Login 校验用户名和密码，成功时签发一个HMAC令牌。
func Login(username, password string) (*User, string, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredential
		}
		return nil, "", fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredential
	}

	tokenStr, err := token.Sign(token.TokenPayload{
		UserID:   u.ID,
		Role:     string(u.Role),
		Nonce:    uuid.NewString(),
		IssuedAt: time.Now().Unix(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("无法签发登录令牌: %w", err)
	}

	return &u, tokenStr, nil
}

// Exists 检查一个用户ID是否存在。
// 优先查询Redis的已知用户缓存；缓存未命中或Redis不可用时回落到SQLite。
func Exists(id uint) (bool, error) {
	if database.IsRedisHealthy() {
		known, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, strconv.FormatUint(uint64(id), 10)).Result()
		if err == nil && known {
			return true, nil
		}
		// 缓存未命中不代表用户不存在（可能在Redis故障窗口中注册），继续查SQLite
	}

	var count int64
	if err := database.DB.Model(&User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询用户存在性失败: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	// SQLite中存在但缓存里没有，顺手修复缓存
	if database.IsRedisHealthy() {
		_ = database.RDB.SAdd(database.Ctx, KnownUsersKey, id).Err()
	}
	return true, nil
}

// GetByID 返回指定ID的用户。
func GetByID(id uint) (*User, error) {
	var u User
	if err := database.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}
