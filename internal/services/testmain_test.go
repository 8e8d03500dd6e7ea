package services

import (
	"debitcard-backend/internal/database"
	"debitcard-backend/internal/models"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB gives every test its own in-memory SQLite database.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func createUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Name: email, Email: email, Password: "hashedpassword"}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}
