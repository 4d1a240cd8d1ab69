package handlers

import (
	"errors"
	"fmt"

	"bidmarket/models"
	"bidmarket/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CollectionHandler struct {
	DB *gorm.DB
}

func NewCollectionHandler(db *gorm.DB) *CollectionHandler {
	return &CollectionHandler{DB: db}
}

// CreateCollectionRequest
type CreateCollectionRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Stocks      int             `json:"stocks"`
	Price       decimal.Decimal `json:"price"`
	OwnerID     uint            `json:"ownerId"`
}

// UpdateCollectionRequest is the allow-listed update payload. Any
// client-supplied owner is ignored; the stored owner is preserved.
type UpdateCollectionRequest struct {
	ID          uint             `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Stocks      *int             `json:"stocks"`
	Price       *decimal.Decimal `json:"price"`
}

// Sortable columns for collection listing
var collectionSortColumns = map[string]bool{
	"name":   true,
	"stocks": true,
	"price":  true,
	"owner":  true,
}

// ListCollections - GET /collections?page=&limit=&sortBy=&sortOrder=&includeBids=
func (h *CollectionHandler) ListCollections(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	sortBy := c.Query("sortBy", "name")
	sortOrder := c.Query("sortOrder", "asc")
	includeBids := c.Query("includeBids") == "true"

	skip := (page - 1) * limit

	if !collectionSortColumns[sortBy] {
		sortBy = "name"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	// Total count for pagination
	var total int64
	if err := h.DB.Model(&models.Collection{}).Count(&total).Error; err != nil {
		utils.Error("Failed to count collections", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch collections"})
	}

	query := h.DB.Preload("Owner")
	if includeBids {
		query = query.Preload("Bids.User")
	}

	if sortBy == "owner" {
		// Sorting by the owning user's name needs a join
		query = query.
			Joins("JOIN users ON users.id = collections.owner_id").
			Order("users.name " + sortOrder)
	} else {
		query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
	}

	var collections []models.Collection
	if err := query.Offset(skip).Limit(limit).Find(&collections).Error; err != nil {
		utils.Error("Failed to fetch collections", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch collections"})
	}

	// Attach the bid count per collection, independent of includeBids
	for i := range collections {
		var count int64
		if err := h.DB.Model(&models.Bid{}).
			Where("collection_id = ?", collections[i].ID).
			Count(&count).Error; err != nil {
			utils.Error("Failed to count bids", map[string]any{"collection_id": collections[i].ID, "error": err.Error()})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch collections"})
		}
		collections[i].BidCount = &count
	}

	return c.JSON(fiber.Map{
		"collections": collections,
		"pagination":  models.NewPagination(page, limit, total),
	})
}

// CreateCollection - POST /collections
func (h *CollectionHandler) CreateCollection(c *fiber.Ctx) error {
	var req CreateCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	collection := models.Collection{
		Name:        req.Name,
		Description: req.Description,
		Stocks:      req.Stocks,
		Price:       req.Price,
		OwnerID:     req.OwnerID,
	}

	if err := h.DB.Create(&collection).Error; err != nil {
		utils.Error("Failed to create collection", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create collection"})
	}

	if err := h.DB.Preload("Owner").Preload("Bids.User").First(&collection, collection.ID).Error; err != nil {
		utils.Error("Failed to load created collection", map[string]any{"collection_id": collection.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create collection"})
	}

	return c.JSON(collection)
}

// UpdateCollection - PUT /collections
func (h *CollectionHandler) UpdateCollection(c *fiber.Ctx) error {
	var req UpdateCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// Fetch the existing collection to preserve its owner
	var existing models.Collection
	if err := h.DB.First(&existing, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Collection not found"})
		}
		utils.Error("Failed to fetch collection", map[string]any{"collection_id": req.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update collection"})
	}

	updates := map[string]interface{}{
		// The owner is immutable: force it back to the stored value
		"owner_id": existing.OwnerID,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Stocks != nil {
		updates["stocks"] = *req.Stocks
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	if err := h.DB.Model(&existing).Updates(updates).Error; err != nil {
		utils.Error("Failed to update collection", map[string]any{"collection_id": req.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update collection"})
	}

	if err := h.DB.Preload("Owner").Preload("Bids.User").First(&existing, existing.ID).Error; err != nil {
		utils.Error("Failed to load updated collection", map[string]any{"collection_id": existing.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update collection"})
	}

	return c.JSON(existing)
}

// DeleteCollection - DELETE /collections
//
// Bids are removed first to satisfy the foreign key; the two deletes are
// separate statements, not one atomic unit.
func (h *CollectionHandler) DeleteCollection(c *fiber.Ctx) error {
	var req struct {
		ID uint `json:"id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.DB.Where("collection_id = ?", req.ID).Delete(&models.Bid{}).Error; err != nil {
		utils.Error("Failed to delete bids for collection", map[string]any{"collection_id": req.ID, "error": err.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete collection"})
	}

	res := h.DB.Delete(&models.Collection{}, req.ID)
	if res.Error != nil {
		utils.Error("Failed to delete collection", map[string]any{"collection_id": req.ID, "error": res.Error.Error()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete collection"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Collection not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
