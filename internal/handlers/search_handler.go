package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"shotbox/internal/dto"
	"shotbox/internal/services"
)

type SearchHandler struct {
	service services.SearchService
}

func NewSearchHandler(service services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := dto.SearchQuery{
		Text:     c.Query("q"),
		Category: c.Query("category"),
	}
	if tags := c.Query("tags"); tags != "" {
		q.Tags = strings.Split(tags, ",")
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid from date"})
		}
		q.DateFrom = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid to date"})
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		q.DateTo = &t
	}
	if minConfidence := c.Query("min_confidence"); minConfidence != "" {
		value, err := strconv.ParseFloat(minConfidence, 64)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid min_confidence"})
		}
		q.MinConfidence = value
	}
	if limit := c.Query("limit"); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid limit"})
		}
		q.Limit = value
	}

	items, err := h.service.Search(q)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(items)
}

func (h *SearchHandler) FullTextSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "query is required"})
	}
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid limit"})
	}

	results, err := h.service.FullTextSearch(query, limit)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(results)
}

func (h *SearchHandler) AdvancedSearch(c *fiber.Ctx) error {
	expression := c.Query("q")
	if expression == "" {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "query is required"})
	}

	items, err := h.service.AdvancedSearch(expression)
	if err != nil {
		var parse *services.QueryParseError
		if errors.As(err, &parse) {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": parse.Error()})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(items)
}

func (h *SearchHandler) Suggestions(c *fiber.Ctx) error {
	prefix := c.Query("prefix")
	if prefix == "" {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "prefix is required"})
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid limit"})
	}

	suggestions, err := h.service.Suggestions(prefix, limit)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(suggestions)
}

func (h *SearchHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(stats)
}
