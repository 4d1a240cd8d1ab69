package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bidmarket/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp builds a fiber app wired to a fresh in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Collection{}, &models.Bid{}))

	app := fiber.New()

	bidHandler := NewBidHandler(db)
	collectionHandler := NewCollectionHandler(db)
	userHandler := NewUserHandler(db)

	app.Get("/bids", bidHandler.ListBids)
	app.Post("/bids", bidHandler.CreateBid)
	app.Put("/bids", bidHandler.UpdateBid)
	app.Delete("/bids", bidHandler.DeleteBid)
	app.Post("/bids/accept", bidHandler.AcceptBid)
	app.Post("/bids/reject", bidHandler.RejectBid)

	app.Get("/collections", collectionHandler.ListCollections)
	app.Post("/collections", collectionHandler.CreateCollection)
	app.Put("/collections", collectionHandler.UpdateCollection)
	app.Delete("/collections", collectionHandler.DeleteCollection)

	app.Get("/users", userHandler.ListUsers)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NoError(t, resp.Body.Close())
	return body
}

func createUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCollection(t *testing.T, db *gorm.DB, owner models.User, stocks int, price string) models.Collection {
	t.Helper()

	collection := models.Collection{
		Name:        "Test Collection",
		Description: "A collection under test",
		Stocks:      stocks,
		Price:       decimal.RequireFromString(price),
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.Create(&collection).Error)
	return collection
}

func createBid(t *testing.T, db *gorm.DB, collection models.Collection, bidder models.User, price, status string) models.Bid {
	t.Helper()

	bid := models.Bid{
		CollectionID: collection.ID,
		UserID:       bidder.ID,
		Price:        decimal.RequireFromString(price),
		Status:       status,
	}
	require.NoError(t, db.Create(&bid).Error)
	return bid
}

func fetchBid(t *testing.T, db *gorm.DB, id uint) models.Bid {
	t.Helper()

	var bid models.Bid
	require.NoError(t, db.First(&bid, id).Error)
	return bid
}

func fetchCollection(t *testing.T, db *gorm.DB, id uint) models.Collection {
	t.Helper()

	var collection models.Collection
	require.NoError(t, db.First(&collection, id).Error)
	return collection
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// priceEqual compares a decoded JSON price value against an expected
// decimal string, tolerating trailing-zero differences.
func priceEqual(t *testing.T, expected string, got any) {
	t.Helper()

	s, ok := got.(string)
	require.True(t, ok, "price should serialize as a string, got %T", got)
	require.True(t, decimal.RequireFromString(expected).Equal(decimal.RequireFromString(s)),
		"expected price %s, got %s", expected, s)
}
