package config

import (
	"testing"

	"bidmarket/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

func TestMigrateCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Collection{}))
	assert.True(t, db.Migrator().HasTable(&models.Bid{}))
}

func TestSeed(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))

	var users, collections, bids int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Collection{}).Count(&collections).Error)
	require.NoError(t, db.Model(&models.Bid{}).Count(&bids).Error)

	assert.Equal(t, int64(10), users)
	assert.Equal(t, int64(100), collections)
	assert.Equal(t, int64(1000), bids)

	// Every seeded bid starts pending
	var pending int64
	require.NoError(t, db.Model(&models.Bid{}).
		Where("status = ?", models.BidStatusPending).
		Count(&pending).Error)
	assert.Equal(t, bids, pending)

	// Nobody bids on their own collection
	var selfBids int64
	require.NoError(t, db.Model(&models.Bid{}).
		Joins("JOIN collections ON collections.id = bids.collection_id").
		Where("bids.user_id = collections.owner_id").
		Count(&selfBids).Error)
	assert.Equal(t, int64(0), selfBids)

	// Stock is seeded strictly positive
	var emptyStock int64
	require.NoError(t, db.Model(&models.Collection{}).
		Where("stocks < 1").
		Count(&emptyStock).Error)
	assert.Equal(t, int64(0), emptyStock)
}

func TestResetAndMigrateReseeds(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	extra := models.User{Name: "Leftover", Email: "leftover@example.com"}
	require.NoError(t, db.Create(&extra).Error)

	require.NoError(t, ResetAndMigrate(db))

	var leftovers int64
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "leftover@example.com").
		Count(&leftovers).Error)
	assert.Equal(t, int64(0), leftovers)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(10), users)
}
