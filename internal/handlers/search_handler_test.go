package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shotbox/internal/dto"
	"shotbox/internal/models"
	"shotbox/internal/services"
)

func newSearchApp() (*fiber.App, *MockSearchService) {
	app := fiber.New()
	mockService := new(MockSearchService)
	handler := NewSearchHandler(mockService)

	app.Get("/search", handler.Search)
	app.Get("/search/fulltext", handler.FullTextSearch)
	app.Get("/search/advanced", handler.AdvancedSearch)
	app.Get("/search/suggestions", handler.Suggestions)
	app.Get("/stats", handler.Stats)
	return app, mockService
}

func TestSearch_Scenarios(t *testing.T) {
	app, mockService := newSearchApp()

	tests := []struct {
		name         string
		url          string
		setupMock    func()
		expectedCode int
	}{
		{
			name: "Filters forwarded",
			url:  "/search?q=timeout&category=ERROR&tags=urgent,reviewed&min_confidence=0.5&limit=5",
			setupMock: func() {
				mockService.On("Search", mock.MatchedBy(func(q dto.SearchQuery) bool {
					return q.Text == "timeout" &&
						q.Category == "ERROR" &&
						len(q.Tags) == 2 &&
						q.MinConfidence == 0.5 &&
						q.Limit == 5
				})).Return([]models.Item{}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Inclusive date range",
			url:  "/search?from=2025-12-01&to=2025-12-07",
			setupMock: func() {
				mockService.On("Search", mock.MatchedBy(func(q dto.SearchQuery) bool {
					return q.DateFrom != nil && q.DateTo != nil &&
						q.DateTo.Day() == 7 && q.DateTo.Hour() == 23
				})).Return([]models.Item{}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Bad from date",
			url:          "/search?from=12/01/2025",
			setupMock:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Bad min_confidence",
			url:          "/search?min_confidence=high",
			setupMock:    func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}

func TestFullTextSearch_Scenarios(t *testing.T) {
	app, mockService := newSearchApp()

	mockService.On("FullTextSearch", "timeout", 50).Return([]dto.SearchResult{
		{Item: models.Item{ContentHash: "abc123"}, Score: 2.5},
	}, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search/fulltext?q=timeout", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var results []dto.SearchResult
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &results))
	assert.Len(t, results, 1)
	assert.Equal(t, 2.5, results[0].Score)

	// A missing query is rejected before the service is touched.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/search/fulltext", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	mockService.AssertExpectations(t)
}

func TestAdvancedSearch_Scenarios(t *testing.T) {
	app, mockService := newSearchApp()

	mockService.On("AdvancedSearch", "timeout category:ERROR").
		Return([]models.Item{{ContentHash: "abc123"}}, nil).Once()
	mockService.On("AdvancedSearch", "categry:ERROR").
		Return(nil, &services.QueryParseError{Token: "categry:ERROR", Reason: "unknown search key"}).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/search/advanced?q=timeout+category%3AERROR", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/search/advanced?q=categry%3AERROR", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	mockService.AssertExpectations(t)
}

func TestSuggestions_Scenarios(t *testing.T) {
	app, mockService := newSearchApp()

	mockService.On("Suggestions", "data", 10).
		Return([]string{"database", "data", "dataframe"}, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search/suggestions?prefix=data", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var suggestions []string
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &suggestions))
	assert.Equal(t, []string{"database", "data", "dataframe"}, suggestions)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/search/suggestions", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	mockService.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	app, mockService := newSearchApp()

	mockService.On("Stats").Return(&dto.Stats{
		TotalItems:        3,
		AverageConfidence: 0.6,
		ByCategory:        map[string]int64{"ERROR": 2, "CODE": 1},
	}, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats dto.Stats
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(2), stats.ByCategory["ERROR"])

	mockService.AssertExpectations(t)
}
