package metadata

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key within a transaction.
func SetValue(db *gorm.DB, key, value string) error {
	// 先尝试更新，未命中任何行时再插入。
	// SQLite的upsert在软删除行存在时会踩到唯一索引，这里保持简单。
	res := db.Model(&Metadata{}).Where("key = ?", key).Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return db.Create(&Metadata{Key: key, Value: value}).Error
}

// --- Specific Helpers for Type Conversion ---

// GetSchemaVersion is a helper that retrieves and parses the applied schema version.
func GetSchemaVersion(db *gorm.DB) (uint, error) {
	valueStr, err := GetValue(db, SchemaVersionKey)
	if err != nil {
		return 0, err
	}
	if valueStr == "" {
		return 0, nil
	}
	version, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("无法解析元数据 '%s' 的值: %w", SchemaVersionKey, err)
	}
	return uint(version), nil
}

// SetSchemaVersion is a helper that formats and sets the applied schema version.
func SetSchemaVersion(db *gorm.DB, version uint) error {
	valueStr := strconv.FormatUint(uint64(version), 10)
	return SetValue(db, SchemaVersionKey, valueStr)
}

// PrimeDB 负责初始化metadata模块的数据库表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}
	return nil
}
