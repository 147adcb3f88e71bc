package models

import (
	"encoding/json"
	"time"
)

// Item is one archived screenshot with its analysis results. ContentHash and
// CurrentPath are unique: a file is indexed once and lives in exactly one
// place at a time.
type Item struct {
	BaseModel
	ContentHash  string          `gorm:"type:char(64);not null;uniqueIndex" json:"content_hash"`
	CurrentPath  string          `gorm:"type:text;not null;uniqueIndex" json:"current_path"`
	OriginalName string          `gorm:"type:varchar(255);not null" json:"original_name"`
	CurrentName  string          `gorm:"type:varchar(255);not null" json:"current_name"`
	Size         int64           `gorm:"default:0" json:"size"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Format       string          `gorm:"type:varchar(16)" json:"format"`
	CapturedAt   time.Time       `gorm:"index" json:"captured_at"`
	IndexedAt    time.Time       `gorm:"index" json:"indexed_at"`
	Category     string          `gorm:"type:varchar(32);not null;index" json:"category"`
	Keywords     json.RawMessage `gorm:"type:jsonb" json:"keywords,omitempty"`
	ExtractedText string         `gorm:"type:text" json:"extracted_text,omitempty"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	ContentType  string          `gorm:"type:varchar(64)" json:"content_type,omitempty"`
	Confidence   float64         `gorm:"not null;index" json:"confidence"`
	Thumbnail    []byte          `json:"-"`
	Tags         json.RawMessage `gorm:"type:jsonb" json:"tags,omitempty"`
	IsIndexed    bool            `gorm:"default:true" json:"is_indexed"`

	SearchTerms []SearchTerm `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"search_terms,omitempty"`
}

func (i *Item) KeywordList() []string {
	return decodeStringList(i.Keywords)
}

func (i *Item) TagList() []string {
	return decodeStringList(i.Tags)
}

func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func EncodeStringList(values []string) json.RawMessage {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return raw
}
