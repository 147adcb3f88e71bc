package handlers

import (
	"time"

	"github.com/stretchr/testify/mock"

	"shotbox/internal/dto"
	"shotbox/internal/models"
)

type MockIndexerService struct {
	mock.Mock
}

func (m *MockIndexerService) Index(rec models.AnalysisRecord, image []byte) (*models.Item, error) {
	args := m.Called(rec, image)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIndexerService) Update(id uint, upd dto.ItemUpdate) (*models.Item, error) {
	args := m.Called(id, upd)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIndexerService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockIndexerService) Rebuild() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(q dto.SearchQuery) ([]models.Item, error) {
	args := m.Called(q)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockSearchService) FullTextSearch(query string, limit int) ([]dto.SearchResult, error) {
	args := m.Called(query, limit)
	return args.Get(0).([]dto.SearchResult), args.Error(1)
}

func (m *MockSearchService) AdvancedSearch(expression string) ([]models.Item, error) {
	args := m.Called(expression)
	if items, ok := args.Get(0).([]models.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSearchService) Suggestions(prefix string, limit int) ([]string, error) {
	args := m.Called(prefix, limit)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSearchService) Stats() (*dto.Stats, error) {
	args := m.Called()
	if stats, ok := args.Get(0).(*dto.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSearchService) GetByID(id uint) (*models.Item, error) {
	args := m.Called(id)
	if item, ok := args.Get(0).(*models.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSearchService) GetRecent(limit int) ([]models.Item, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Item), args.Error(1)
}

type MockOrganizerService struct {
	mock.Mock
}

func (m *MockOrganizerService) Place(itemID uint, simulate bool) (*dto.PlacementResult, error) {
	args := m.Called(itemID, simulate)
	if result, ok := args.Get(0).(*dto.PlacementResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrganizerService) Rollback(since time.Time) (int, error) {
	args := m.Called(since)
	return args.Int(0), args.Error(1)
}
