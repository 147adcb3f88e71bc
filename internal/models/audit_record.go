package models

import (
	"encoding/json"
	"time"
)

// AuditRecord logs one structural operation on an item. Rows are append-only:
// the only permitted mutation is the success -> rolled_back status transition
// applied when a move is reversed. ItemID is nullable so history survives
// item deletion.
type AuditRecord struct {
	BaseModel
	ItemID          *uint           `gorm:"index" json:"item_id,omitempty"`
	Operation       string          `gorm:"type:varchar(16);not null;index" json:"operation"`
	Timestamp       time.Time       `gorm:"not null;index" json:"timestamp"`
	SourcePath      string          `gorm:"type:text" json:"source_path"`
	DestinationPath string          `gorm:"type:text" json:"destination_path"`
	SourceName      string          `gorm:"type:varchar(255)" json:"source_name"`
	DestinationName string          `gorm:"type:varchar(255)" json:"destination_name"`
	Status          string          `gorm:"type:varchar(16);not null;index" json:"status"`
	ErrorDetail     string          `gorm:"type:text" json:"error_detail,omitempty"`
	Metadata        json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
}

const (
	OperationInsert   = "insert"
	OperationMove     = "move"
	OperationRename   = "rename"
	OperationDelete   = "delete"
	OperationRollback = "rollback"

	StatusSuccess    = "success"
	StatusFailed     = "failed"
	StatusRolledBack = "rolled_back"
)
