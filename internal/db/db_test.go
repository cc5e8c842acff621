package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"propertyhub/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestMigrate_CreatesConstraints(t *testing.T) {
	gormDB, err := Open(Options{Driver: "sqlite", DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, Migrate(gormDB))

	m := gormDB.Migrator()
	assert.True(t, m.HasTable(&model.User{}))
	assert.True(t, m.HasTable(&model.Property{}))
	assert.True(t, m.HasTable(&model.Utility{}))
	assert.True(t, m.HasIndex(&model.User{}, "Email"))
	assert.True(t, m.HasIndex(&model.User{}, "Username"))

	var ddl string
	require.NoError(t, gormDB.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'utilities'").Scan(&ddl).Error)
	assert.Contains(t, ddl, "REFERENCES `properties`")
	assert.Contains(t, ddl, "ON DELETE CASCADE")

	require.NoError(t, Reset(gormDB))
	assert.False(t, m.HasTable(&model.Utility{}))
	assert.False(t, m.HasTable(&model.Property{}))
}

func TestReset(t *testing.T) {
	gormDB, err := Open(Options{Driver: "sqlite", DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)

	require.NoError(t, Reset(gormDB), "tables that never existed are skipped")

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.ErrorContains(t, Reset(gormDB), "drop table")
}
