package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"shotbox/internal/services"
)

type OrganizeHandler struct {
	service services.OrganizerService
}

func NewOrganizeHandler(service services.OrganizerService) *OrganizeHandler {
	return &OrganizeHandler{service: service}
}

func (h *OrganizeHandler) PlaceItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid item ID"})
	}
	simulate := c.Query("simulate") == "true"

	result, err := h.service.Place(uint(id), simulate)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "item not found"})
		}
		if errors.Is(err, services.ErrTooManyDuplicates) {
			return c.Status(http.StatusConflict).JSON(map[string]interface{}{"error": err.Error()})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(result)
}

// Rollback reverses moves within a window given either as an RFC3339
// timestamp or a trailing number of hours (default 24).
func (h *OrganizeHandler) Rollback(c *fiber.Ctx) error {
	var req struct {
		Since string `json:"since,omitempty"`
		Hours int    `json:"hours,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": err.Error()})
	}

	since := time.Now().Add(-24 * time.Hour)
	if req.Since != "" {
		t, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid since timestamp"})
		}
		since = t
	} else if req.Hours > 0 {
		since = time.Now().Add(-time.Duration(req.Hours) * time.Hour)
	}

	count, err := h.service.Rollback(since)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error(), "count": count})
	}
	return c.JSON(map[string]interface{}{"count": count})
}
