package models

// SearchTerm is a single weighted token attached to an item. Explicit
// keywords carry weight 1.0, incidental OCR words 0.5. Rows are replaced
// wholesale on re-index, never updated in place.
type SearchTerm struct {
	BaseModel
	ItemID uint    `gorm:"not null;index" json:"item_id"`
	Term   string  `gorm:"type:varchar(255);not null;index" json:"term"`
	Weight float64 `gorm:"not null;default:1.0" json:"weight"`
}

const (
	KeywordWeight = 1.0
	TextWeight    = 0.5
)
