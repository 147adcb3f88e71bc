package models

import (
	"time"
)

// Screenshot categories. Classification upstream always resolves to one of
// these; anything unrecognized is rejected at the indexing boundary.
const (
	CategoryError         = "ERROR"
	CategoryCode          = "CODE"
	CategoryUI            = "UI"
	CategoryDocumentation = "DOCUMENTATION"
	CategoryData          = "DATA"
	CategoryCommunication = "COMMUNICATION"
	CategoryOther         = "OTHER"
)

var categories = map[string]struct{}{
	CategoryError:         {},
	CategoryCode:          {},
	CategoryUI:            {},
	CategoryDocumentation: {},
	CategoryData:          {},
	CategoryCommunication: {},
	CategoryOther:         {},
}

func KnownCategory(category string) bool {
	_, ok := categories[category]
	return ok
}

// AnalysisRecord is the completed analysis for one screenshot, handed to the
// indexer by the upstream pipeline (monitoring, OCR, vision, classification).
// It is the single input contract of this service; how the analysis was
// produced is not our concern.
type AnalysisRecord struct {
	ContentHash   string    `json:"content_hash"`
	SourcePath    string    `json:"source_path"`
	OriginalName  string    `json:"original_name"`
	Size          int64     `json:"size"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Format        string    `json:"format"`
	CapturedAt    time.Time `json:"captured_at"`
	ExtractedText string    `json:"extracted_text"`
	Description   string    `json:"description"`
	ContentType   string    `json:"content_type"`
	Category      string    `json:"category"`
	Keywords      []string  `json:"keywords"`
	Tags          []string  `json:"tags"`
	Confidence    float64   `json:"confidence"`
}
