package handlers

import (
	"errors"

	"bidmarket/models"
	"bidmarket/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BidHandler struct {
	DB *gorm.DB
}

func NewBidHandler(db *gorm.DB) *BidHandler {
	return &BidHandler{DB: db}
}

// CreateBidRequest
type CreateBidRequest struct {
	CollectionID uint            `json:"collectionId"`
	UserID       uint            `json:"userId"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
}

// UpdateBidRequest carries a bid id plus any subset of bid fields. The
// update path is deliberately permissive: status and foreign keys are
// writable with no guard on the bid's current state.
type UpdateBidRequest struct {
	ID           uint             `json:"id"`
	Price        *decimal.Decimal `json:"price"`
	Status       *string          `json:"status"`
	UserID       *uint            `json:"userId"`
	CollectionID *uint            `json:"collectionId"`
}

// AcceptRejectRequest
type AcceptRejectRequest struct {
	BidID uint `json:"bidId"`
}

// ListBids - GET /bids?collection_id=&page=&limit=
func (h *BidHandler) ListBids(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	skip := (page - 1) * limit
	collectionID := c.QueryInt("collection_id", 0)

	filter := func(db *gorm.DB) *gorm.DB {
		if collectionID > 0 {
			return db.Where("collection_id = ?", collectionID)
		}
		return db
	}

	// Total count for pagination, ignoring the page window
	var total int64
	if err := filter(h.DB.Model(&models.Bid{})).Count(&total).Error; err != nil {
		utils.Error("Failed to count bids", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bids"})
	}

	var bids []models.Bid
	err := filter(h.DB).
		Preload("User").
		Preload("Collection.Owner").
		Order("price desc"). // highest offer first
		Offset(skip).
		Limit(limit).
		Find(&bids).Error
	if err != nil {
		utils.Error("Failed to fetch bids", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bids"})
	}

	return c.JSON(fiber.Map{
		"bids":       bids,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// CreateBid - POST /bids
func (h *BidHandler) CreateBid(c *fiber.Ctx) error {
	var req CreateBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	status := req.Status
	if status == "" {
		status = models.BidStatusPending
	}

	bid := models.Bid{
		CollectionID: req.CollectionID,
		UserID:       req.UserID,
		Price:        req.Price,
		Status:       status,
	}

	if err := h.DB.Create(&bid).Error; err != nil {
		utils.Error("Failed to create bid", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create bid"})
	}

	// Reload with the bidder and target collection (with owner) attached
	if err := h.DB.Preload("User").Preload("Collection.Owner").First(&bid, bid.ID).Error; err != nil {
		utils.Error("Failed to load created bid", map[string]any{"bid_id": bid.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create bid"})
	}

	return c.JSON(bid)
}

// UpdateBid - PUT /bids
func (h *BidHandler) UpdateBid(c *fiber.Ctx) error {
	var req UpdateBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var bid models.Bid
	if err := h.DB.First(&bid, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bid not found"})
		}
		utils.Error("Failed to fetch bid", map[string]any{"bid_id": req.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bid"})
	}

	updates := map[string]interface{}{}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.UserID != nil {
		updates["user_id"] = *req.UserID
	}
	if req.CollectionID != nil {
		updates["collection_id"] = *req.CollectionID
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&bid).Updates(updates).Error; err != nil {
			utils.Error("Failed to update bid", map[string]any{"bid_id": req.ID, "error": err.Error()})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bid"})
		}
	}

	if err := h.DB.Preload("User").Preload("Collection.Owner").First(&bid, bid.ID).Error; err != nil {
		utils.Error("Failed to load updated bid", map[string]any{"bid_id": bid.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bid"})
	}

	return c.JSON(bid)
}

// DeleteBid - DELETE /bids
func (h *BidHandler) DeleteBid(c *fiber.Ctx) error {
	var req struct {
		ID uint `json:"id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	res := h.DB.Delete(&models.Bid{}, req.ID)
	if res.Error != nil {
		utils.Error("Failed to delete bid", map[string]any{"bid_id": req.ID, "error": res.Error.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete bid"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bid not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// AcceptBid - POST /bids/accept
//
// Accepts the bid, rejects every other bid on the same collection and
// decrements the collection's stock by one. The three writes are issued
// sequentially without a wrapping transaction, so concurrent accepts
// against the same collection can race.
func (h *BidHandler) AcceptBid(c *fiber.Ctx) error {
	var req AcceptRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.BidID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bidId is required"})
	}

	// Get the bid to find the collection
	var bid models.Bid
	if err := h.DB.Preload("Collection").First(&bid, req.BidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bid not found"})
		}
		utils.Error("Failed to fetch bid", map[string]any{"bid_id": req.BidID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept bid"})
	}
	if bid.Collection == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Collection not found"})
	}

	// Check if the collection has stock left
	if bid.Collection.Stocks <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Collection is out of stock"})
	}

	// Accept the selected bid
	if err := h.DB.Model(&models.Bid{}).
		Where("id = ?", bid.ID).
		Update("status", models.BidStatusAccepted).Error; err != nil {
		utils.Error("Failed to accept bid", map[string]any{"bid_id": bid.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept bid"})
	}

	// Reject all other bids for the collection, whatever their status
	if err := h.DB.Model(&models.Bid{}).
		Where("collection_id = ? AND id <> ?", bid.CollectionID, bid.ID).
		Update("status", models.BidStatusRejected).Error; err != nil {
		utils.Error("Failed to reject sibling bids", map[string]any{"bid_id": bid.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept bid"})
	}

	// Decrease the collection stock
	if err := h.DB.Model(&models.Collection{}).
		Where("id = ?", bid.CollectionID).
		Update("stocks", bid.Collection.Stocks-1).Error; err != nil {
		utils.Error("Failed to decrement stock", map[string]any{"collection_id": bid.CollectionID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to accept bid"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RejectBid - POST /bids/reject
func (h *BidHandler) RejectBid(c *fiber.Ctx) error {
	var req AcceptRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.BidID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bidId is required"})
	}

	// Unconditional: no existence check, no stock change, reachable from
	// any current status
	if err := h.DB.Model(&models.Bid{}).
		Where("id = ?", req.BidID).
		Update("status", models.BidStatusRejected).Error; err != nil {
		utils.Error("Failed to reject bid", map[string]any{"bid_id": req.BidID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject bid"})
	}

	return c.JSON(fiber.Map{"success": true})
}
