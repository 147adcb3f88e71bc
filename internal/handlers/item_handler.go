package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shotbox/internal/dto"
	"shotbox/internal/models"
	"shotbox/internal/services"
)

type ItemHandler struct {
	indexer services.IndexerService
	search  services.SearchService
}

func NewItemHandler(indexer services.IndexerService, search services.SearchService) *ItemHandler {
	return &ItemHandler{indexer: indexer, search: search}
}

// CreateItem ingests a completed analysis record. The raw image may be
// attached base64-encoded for thumbnail rendering; it is never stored.
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req struct {
		models.AnalysisRecord
		ImageBase64 string `json:"image_base64,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": err.Error()})
	}

	var image []byte
	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid image encoding"})
		}
		image = decoded
	}

	item, err := h.indexer.Index(req.AnalysisRecord, image)
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": validation.Error()})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.Status(http.StatusCreated).JSON(item)
}

func (h *ItemHandler) GetItemByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid item ID"})
	}

	item, err := h.search.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "item not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(item)
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid item ID"})
	}

	var req dto.ItemUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}

	item, err := h.indexer.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "item not found"})
		}
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": validation.Error()})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "could not update item"})
	}
	return c.JSON(item)
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid item ID"})
	}
	if err := h.indexer.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "item not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *ItemHandler) ListRecent(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid limit"})
	}
	items, err := h.search.GetRecent(limit)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "could not list items"})
	}
	return c.JSON(items)
}

func (h *ItemHandler) RebuildIndex(c *fiber.Ctx) error {
	count, err := h.indexer.Rebuild()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error(), "count": count})
	}
	return c.JSON(map[string]interface{}{"count": count})
}
