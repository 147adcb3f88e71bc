package dto

import (
	"time"

	"shotbox/internal/models"
)

// SearchQuery carries the optional, conjunctive filters of a simple search.
// Zero values mean "no filter".
type SearchQuery struct {
	Text          string     `json:"text,omitempty"`
	Category      string     `json:"category,omitempty"`
	DateFrom      *time.Time `json:"date_from,omitempty"`
	DateTo        *time.Time `json:"date_to,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	MinConfidence float64    `json:"min_confidence,omitempty"`
	Limit         int        `json:"limit,omitempty"`
}

type SearchResult struct {
	Item  models.Item `json:"item"`
	Score float64     `json:"score"`
}

type Stats struct {
	TotalItems        int64            `json:"total_items"`
	AverageConfidence float64          `json:"average_confidence"`
	ByCategory        map[string]int64 `json:"by_category"`
	ByDay             map[string]int64 `json:"by_day"`
}
