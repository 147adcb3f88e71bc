package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"shotbox/internal/dto"
	"shotbox/internal/models"
	"shotbox/internal/repository"
	"shotbox/internal/search"
)

const defaultSearchLimit = 50
const defaultSuggestionLimit = 10
const statsWindowDays = 30

// Ranking factors for full-text results. Text relevance (the bleve score)
// dominates; term weights, recency and confidence only separate items that
// actually match.
const (
	termWeightFactor = 0.5
	recencyFactor    = 0.25
	confidenceFactor = 0.25
)

// SearchService is the read-only query surface over the metadata store,
// the term index and the full-text index.
type SearchService interface {
	Search(q dto.SearchQuery) ([]models.Item, error)
	FullTextSearch(query string, limit int) ([]dto.SearchResult, error)
	AdvancedSearch(expression string) ([]models.Item, error)
	Suggestions(prefix string, limit int) ([]string, error)
	Stats() (*dto.Stats, error)
	GetByID(id uint) (*models.Item, error)
	GetRecent(limit int) ([]models.Item, error)
}

type searchServiceImpl struct {
	itemRepo   repository.ItemRepository
	termRepo   repository.SearchTermRepository
	fulltext   *search.Index
	logService LogService
}

func NewSearchService(
	itemRepository repository.ItemRepository,
	searchTermRepository repository.SearchTermRepository,
	fulltext *search.Index,
	logService LogService,
) SearchService {
	return &searchServiceImpl{
		itemRepo:   itemRepository,
		termRepo:   searchTermRepository,
		fulltext:   fulltext,
		logService: logService,
	}
}

func (s *searchServiceImpl) Search(q dto.SearchQuery) ([]models.Item, error) {
	return s.itemRepo.Search(q)
}

// FullTextSearch ranks matching items by a weighted sum of full-text score,
// matching term weights, recency and classification confidence. Items
// without a text match are never candidates.
func (s *searchServiceImpl) FullTextSearch(query string, limit int) ([]dto.SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	hits, err := s.fulltext.Query(query, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []dto.SearchResult{}, nil
	}

	ids := make([]uint, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	weights, err := s.termRepo.SumWeightsByItem(ids, tokenize(query))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]dto.SearchResult, 0, len(hits))
	for _, hit := range hits {
		item, ok := byID[hit.ItemID]
		if !ok {
			continue
		}
		score := hit.Score +
			termWeightFactor*weights[hit.ItemID] +
			recencyFactor*recencyOf(item.IndexedAt, now) +
			confidenceFactor*item.Confidence
		results = append(results, dto.SearchResult{Item: item, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].Item.IndexedAt.Equal(results[j].Item.IndexedAt) {
			return results[i].Item.IndexedAt.After(results[j].Item.IndexedAt)
		}
		return results[i].Item.Confidence > results[j].Item.Confidence
	})
	return results, nil
}

func (s *searchServiceImpl) AdvancedSearch(expression string) ([]models.Item, error) {
	q, err := ParseExpression(expression)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.Search(q)
}

func (s *searchServiceImpl) Suggestions(prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > defaultSuggestionLimit {
		limit = defaultSuggestionLimit
	}
	return s.termRepo.Suggest(prefix, limit)
}

func (s *searchServiceImpl) Stats() (*dto.Stats, error) {
	total, err := s.itemRepo.Count()
	if err != nil {
		return nil, err
	}
	average, err := s.itemRepo.AverageConfidence()
	if err != nil {
		return nil, err
	}
	byCategory, err := s.itemRepo.CountByCategory()
	if err != nil {
		return nil, err
	}
	byDay, err := s.itemRepo.CountByDay(statsWindowDays)
	if err != nil {
		return nil, err
	}
	return &dto.Stats{
		TotalItems:        total,
		AverageConfidence: average,
		ByCategory:        byCategory,
		ByDay:             byDay,
	}, nil
}

func (s *searchServiceImpl) GetByID(id uint) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *searchServiceImpl) GetRecent(limit int) ([]models.Item, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.itemRepo.FindRecent(limit)
}

// recencyOf decays from 1 toward 0 as the item ages, halving at 30 days.
func recencyOf(indexedAt, now time.Time) float64 {
	ageDays := now.Sub(indexedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return 1 / (1 + ageDays/30)
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
