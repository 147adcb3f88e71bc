package repository

import (
	"time"

	"gorm.io/gorm"

	"shotbox/internal/models"
)

type AuditRepository interface {
	GenericRepository[models.AuditRecord]
	FindByItemID(itemID uint) ([]models.AuditRecord, error)
	FindReversible(since time.Time) ([]models.AuditRecord, error)
	MarkRolledBack(id uint) error
}

type AuditRepositoryImpl[T models.AuditRecord] struct {
	GenericRepository[models.AuditRecord]
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl[models.AuditRecord]{
		GenericRepository: NewGenericRepository[models.AuditRecord](db),
		db:                db,
	}
}

func (r *AuditRepositoryImpl[T]) FindByItemID(itemID uint) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	err := r.db.Where("item_id = ?", itemID).Order("timestamp DESC").Find(&records).Error
	return records, err
}

// FindReversible returns successful moves and renames since the cutoff,
// newest first. Records already rolled back are excluded, which makes a
// repeated rollback over the same window a no-op.
func (r *AuditRepositoryImpl[T]) FindReversible(since time.Time) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	err := r.db.
		Where("operation IN ?", []string{models.OperationMove, models.OperationRename}).
		Where("status = ?", models.StatusSuccess).
		Where("timestamp >= ?", since).
		Order("timestamp DESC, id DESC").
		Find(&records).Error
	return records, err
}

// MarkRolledBack flips the status of a successful record exactly once.
// Audit rows are otherwise immutable.
func (r *AuditRepositoryImpl[T]) MarkRolledBack(id uint) error {
	return r.db.Model(&models.AuditRecord{}).
		Where("id = ? AND status = ?", id, models.StatusSuccess).
		Update("status", models.StatusRolledBack).Error
}
