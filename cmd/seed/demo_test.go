package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"propertyhub/internal/db"
	"propertyhub/internal/model"
)

func TestSeedDemo(t *testing.T) {
	gormDB, err := db.Open(db.Options{Driver: "sqlite", DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	properties, bills, err := seedDemo(context.Background(), gormDB, false)
	require.NoError(t, err)
	assert.Equal(t, len(demoData), properties)
	assert.Equal(t, 6, bills)

	properties, bills, err = seedDemo(context.Background(), gormDB, false)
	require.NoError(t, err)
	assert.Zero(t, properties)
	assert.Zero(t, bills)

	var count int64
	require.NoError(t, gormDB.Model(&model.Utility{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
}
