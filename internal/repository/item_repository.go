package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"shotbox/internal/dto"
	"shotbox/internal/models"
)

type ItemRepository interface {
	GenericRepository[models.Item]
	FindByHash(hash string) (*models.Item, error)
	FindByPath(path string) (*models.Item, error)
	FindByIDs(ids []uint) ([]models.Item, error)
	FindRecent(limit int) ([]models.Item, error)
	Search(q dto.SearchQuery) ([]models.Item, error)
	Count() (int64, error)
	AverageConfidence() (float64, error)
	CountByCategory() (map[string]int64, error)
	CountByDay(days int) (map[string]int64, error)
	CreateWithTerms(item *models.Item, terms []models.SearchTerm, sync func(*models.Item) error) error
	UpdateWithTerms(item *models.Item, terms []models.SearchTerm, sync func(*models.Item) error) error
	DeleteWithSync(item *models.Item, sync func(*models.Item) error) error
}

type ItemRepositoryImpl[T models.Item] struct {
	GenericRepository[models.Item]
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl[models.Item]{
		GenericRepository: NewGenericRepository[models.Item](db),
		db:                db,
	}
}

func (r *ItemRepositoryImpl[T]) FindByHash(hash string) (*models.Item, error) {
	var item models.Item
	err := r.db.Where("content_hash = ?", hash).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepositoryImpl[T]) FindByPath(path string) (*models.Item, error) {
	var item models.Item
	err := r.db.Where("current_path = ?", path).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepositoryImpl[T]) FindByIDs(ids []uint) ([]models.Item, error) {
	var items []models.Item
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl[T]) FindRecent(limit int) ([]models.Item, error) {
	var items []models.Item
	err := r.db.Order("indexed_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

// Search applies every non-zero filter conjunctively. Free text goes through
// the term index, tags through the serialized tag array.
func (r *ItemRepositoryImpl[T]) Search(q dto.SearchQuery) ([]models.Item, error) {
	query := r.db.Model(&models.Item{})

	if q.Text != "" {
		query = query.Where(
			"id IN (SELECT DISTINCT item_id FROM search_terms WHERE term LIKE ?)",
			"%"+strings.ToLower(q.Text)+"%",
		)
	}
	if q.Category != "" {
		query = query.Where("category = ?", strings.ToUpper(q.Category))
	}
	if q.DateFrom != nil {
		query = query.Where("captured_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("captured_at <= ?", *q.DateTo)
	}
	if q.MinConfidence > 0 {
		query = query.Where("confidence >= ?", q.MinConfidence)
	}
	for _, tag := range q.Tags {
		query = query.Where("tags LIKE ?", fmt.Sprintf(`%%"%s"%%`, tag))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	var items []models.Item
	err := query.Order("indexed_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl[T]) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Count(&count).Error
	return count, err
}

func (r *ItemRepositoryImpl[T]) AverageConfidence() (float64, error) {
	var avg float64
	err := r.db.Model(&models.Item{}).
		Select("COALESCE(AVG(confidence), 0)").Scan(&avg).Error
	return avg, err
}

func (r *ItemRepositoryImpl[T]) CountByCategory() (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err := r.db.Model(&models.Item{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Category] = r.Count
	}
	return result, nil
}

func (r *ItemRepositoryImpl[T]) CountByDay(days int) (map[string]int64, error) {
	type row struct {
		Day   string
		Count int64
	}
	since := time.Now().AddDate(0, 0, -days)
	var rows []row
	err := r.db.Model(&models.Item{}).
		Select("DATE(captured_at) as day, COUNT(*) as count").
		Where("captured_at >= ?", since).
		Group("DATE(captured_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Day] = r.Count
	}
	return result, nil
}

// CreateWithTerms writes the item, its search terms and the full-text
// projection as one unit. The sync callback runs last inside the
// transaction so a failed full-text write rolls everything back.
func (r *ItemRepositoryImpl[T]) CreateWithTerms(item *models.Item, terms []models.SearchTerm, sync func(*models.Item) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		for i := range terms {
			terms[i].ItemID = item.ID
		}
		if len(terms) > 0 {
			if err := tx.Create(&terms).Error; err != nil {
				return err
			}
		}
		if sync != nil {
			return sync(item)
		}
		return nil
	})
}

// UpdateWithTerms saves the item and replaces its derived rows in one
// transaction, mirroring CreateWithTerms.
func (r *ItemRepositoryImpl[T]) UpdateWithTerms(item *models.Item, terms []models.SearchTerm, sync func(*models.Item) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.SearchTerm{}).Error; err != nil {
			return err
		}
		for i := range terms {
			terms[i].ItemID = item.ID
		}
		if len(terms) > 0 {
			if err := tx.Create(&terms).Error; err != nil {
				return err
			}
		}
		if sync != nil {
			return sync(item)
		}
		return nil
	})
}

func (r *ItemRepositoryImpl[T]) DeleteWithSync(item *models.Item, sync func(*models.Item) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.SearchTerm{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Item{}, item.ID).Error; err != nil {
			return err
		}
		if sync != nil {
			return sync(item)
		}
		return nil
	})
}
