package repository

import (
	"strings"

	"gorm.io/gorm"

	"shotbox/internal/models"
)

type SearchTermRepository interface {
	GenericRepository[models.SearchTerm]
	FindByItemID(itemID uint) ([]models.SearchTerm, error)
	Suggest(prefix string, limit int) ([]string, error)
	SumWeightsByItem(itemIDs []uint, terms []string) (map[uint]float64, error)
}

type SearchTermRepositoryImpl[T models.SearchTerm] struct {
	GenericRepository[models.SearchTerm]
	db *gorm.DB
}

func NewSearchTermRepository(db *gorm.DB) SearchTermRepository {
	return &SearchTermRepositoryImpl[models.SearchTerm]{
		GenericRepository: NewGenericRepository[models.SearchTerm](db),
		db:                db,
	}
}

func (r *SearchTermRepositoryImpl[T]) FindByItemID(itemID uint) ([]models.SearchTerm, error) {
	var terms []models.SearchTerm
	err := r.db.Where("item_id = ?", itemID).Order("term").Find(&terms).Error
	return terms, err
}

// Suggest returns distinct terms with the given prefix, strongest first.
// Strength is the summed weight of the term across all items.
func (r *SearchTermRepositoryImpl[T]) Suggest(prefix string, limit int) ([]string, error) {
	var terms []string
	err := r.db.Model(&models.SearchTerm{}).
		Select("term").
		Where("term LIKE ?", strings.ToLower(prefix)+"%").
		Group("term").
		Order("SUM(weight) DESC").
		Limit(limit).
		Pluck("term", &terms).Error
	return terms, err
}

func (r *SearchTermRepositoryImpl[T]) SumWeightsByItem(itemIDs []uint, terms []string) (map[uint]float64, error) {
	result := make(map[uint]float64)
	if len(itemIDs) == 0 || len(terms) == 0 {
		return result, nil
	}
	type row struct {
		ItemID uint
		Total  float64
	}
	var rows []row
	err := r.db.Model(&models.SearchTerm{}).
		Select("item_id, SUM(weight) as total").
		Where("item_id IN ? AND term IN ?", itemIDs, terms).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.ItemID] = r.Total
	}
	return result, nil
}
