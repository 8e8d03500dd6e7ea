package database

import (
	"debitcard-backend/config"
	"debitcard-backend/internal/models"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "cards.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	assert.Same(t, db, DB)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.DebitCard{}))
	assert.True(t, db.Migrator().HasTable(&models.DebitCardTransaction{}))
	assert.True(t, db.Migrator().HasColumn(&models.DebitCard{}, "deleted_at"))
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	err := ConnectRedis(&config.Config{RedisAddr: mr.Host(), RedisPort: mr.Port()})
	assert.NoError(t, err)
	assert.NotNil(t, RedisClient)
}

