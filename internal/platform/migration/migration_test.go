package migration_test

import (
	"errors"
	"testing"

	"github.com/MoguBox/blindbox-backend/internal/platform/metadata"
	"github.com/MoguBox/blindbox-backend/internal/platform/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestApply_RunsInOrderAndRecordsVersion(t *testing.T) {
	db := newTestDB(t)

	var ran []uint
	migrations := []migration.Migration{
		{Version: 1, Name: "one", Run: func(tx *gorm.DB) error { ran = append(ran, 1); return nil }},
		{Version: 2, Name: "two", Run: func(tx *gorm.DB) error { ran = append(ran, 2); return nil }},
	}

	require.NoError(t, migration.Apply(db, migrations))
	assert.Equal(t, []uint{1, 2}, ran)

	version, err := metadata.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestApply_SkipsAlreadyAppliedVersions(t *testing.T) {
	db := newTestDB(t)

	count := 0
	migrations := []migration.Migration{
		{Version: 1, Name: "one", Run: func(tx *gorm.DB) error { count++; return nil }},
	}

	require.NoError(t, migration.Apply(db, migrations))
	require.NoError(t, migration.Apply(db, migrations))
	assert.Equal(t, 1, count, "已应用的迁移不应重放")
}

func TestApply_FailedMigrationDoesNotAdvanceVersion(t *testing.T) {
	db := newTestDB(t)

	boom := errors.New("boom")
	migrations := []migration.Migration{
		{Version: 1, Name: "ok", Run: func(tx *gorm.DB) error { return nil }},
		{Version: 2, Name: "bad", Run: func(tx *gorm.DB) error { return boom }},
	}

	err := migration.Apply(db, migrations)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	version, verr := metadata.GetSchemaVersion(db)
	require.NoError(t, verr)
	assert.Equal(t, uint(1), version, "失败的迁移不应推进版本号")

	// 修复后重跑，只会执行失败的那一个
	migrations[1].Run = func(tx *gorm.DB) error { return nil }
	require.NoError(t, migration.Apply(db, migrations))
	version, verr = metadata.GetSchemaVersion(db)
	require.NoError(t, verr)
	assert.Equal(t, uint(2), version)
}
