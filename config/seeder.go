package config

import (
	"fmt"
	"math/rand"
	"time"

	"bidmarket/models"
	"bidmarket/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed fills an empty database with demo data: 10 users, 100 collections
// spread round-robin over the users, and 10 pending bids per collection
// placed by non-owner users around the asking price.
func Seed(db *gorm.DB) error {
	utils.Info("Seeding database...", nil)

	users := make([]models.User, 0, 10)
	for i := 1; i <= 10; i++ {
		user := models.User{
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
		}
		if err := db.Create(&user).Error; err != nil {
			utils.Error("Failed to seed user", map[string]any{"email": user.Email, "error": err.Error()})
			return err
		}
		users = append(users, user)
	}

	collections := make([]models.Collection, 0, 100)
	for i := 1; i <= 100; i++ {
		owner := users[(i-1)%len(users)]
		collection := models.Collection{
			Name:        fmt.Sprintf("Collection %d", i),
			Description: fmt.Sprintf("Description for collection %d", i),
			Stocks:      rand.Intn(100) + 1,
			Price:       decimal.NewFromFloat(rand.Float64()*1000 + 10).Round(2),
			OwnerID:     owner.ID,
		}
		if err := db.Create(&collection).Error; err != nil {
			utils.Error("Failed to seed collection", map[string]any{"name": collection.Name, "error": err.Error()})
			return err
		}
		collections = append(collections, collection)
	}

	for _, collection := range collections {
		bidders := make([]models.User, 0, len(users)-1)
		for _, u := range users {
			if u.ID != collection.OwnerID {
				bidders = append(bidders, u)
			}
		}

		for j := 0; j < 10; j++ {
			bidder := bidders[j%len(bidders)]
			// Bid somewhere between 0.8x and 1.2x the asking price,
			// placed at a random moment within the last 30 days.
			factor := decimal.NewFromFloat(0.8 + rand.Float64()*0.4)
			bid := models.Bid{
				CollectionID: collection.ID,
				UserID:       bidder.ID,
				Price:        collection.Price.Mul(factor).Round(2),
				Status:       models.BidStatusPending,
				CreatedAt:    time.Now().Add(-time.Duration(rand.Int63n(int64(30 * 24 * time.Hour)))),
			}
			if err := db.Create(&bid).Error; err != nil {
				utils.Error("Failed to seed bid", map[string]any{"collection_id": collection.ID, "error": err.Error()})
				return err
			}
		}
	}

	utils.Info("Database seeded", map[string]any{
		"users":       len(users),
		"collections": len(collections),
	})
	return nil
}
