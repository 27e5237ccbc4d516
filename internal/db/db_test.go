package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/model"
)

func TestInit_SQLiteMigratesAndIndexes(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", DSN: "file:db_init_test?mode=memory&cache=shared"}
	gdb, err := Init(cfg, &model.PushSubscription{}, &model.ActivityLogEntry{})
	require.NoError(t, err)

	assert.True(t, gdb.Migrator().HasTable(&model.PushSubscription{}))
	assert.True(t, gdb.Migrator().HasTable("activity_logs"))
	assert.True(t, gdb.Migrator().HasIndex(&model.ActivityLogEntry{}, "idx_activity_logs_record"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
