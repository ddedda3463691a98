package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jdihkota/jdih-api/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestRunMigrations(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	for _, table := range []string{
		"users", "documents", "document_types", "document_statuses",
		"authors", "subjects", "document_author", "document_subject",
		"jdihn_sync_logs",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// The uuid primary key is assigned in the model hook, not by the
	// database, so inserts work on every dialect.
	user := models.User{Email: "editor@jdih.local", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	assert.True(t, db.Migrator().HasColumn(&models.DocumentAuthor{}, "sort_order"))
	assert.True(t, db.Migrator().HasColumn(&models.DocumentAuthor{}, "role"))
}

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	require.NoError(t, SeedReferenceData(db))
	require.NoError(t, SeedReferenceData(db))

	var typeCount, statusCount int64
	require.NoError(t, db.Model(&models.DocumentType{}).Count(&typeCount).Error)
	require.NoError(t, db.Model(&models.DocumentStatus{}).Count(&statusCount).Error)
	assert.Equal(t, int64(4), typeCount)
	assert.Equal(t, int64(4), statusCount)

	var published models.DocumentStatus
	require.NoError(t, db.Where("slug = ?", "published").First(&published).Error)
	assert.True(t, published.IsPublished)

	var others int64
	require.NoError(t, db.Model(&models.DocumentStatus{}).
		Where("is_published = ? AND slug <> ?", true, "published").
		Count(&others).Error)
	assert.Equal(t, int64(0), others)
}
