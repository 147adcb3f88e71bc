package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shotbox/internal/dto"
	"shotbox/internal/services"
)

func newOrganizeApp() (*fiber.App, *MockOrganizerService) {
	app := fiber.New()
	mockService := new(MockOrganizerService)
	handler := NewOrganizeHandler(mockService)

	app.Post("/organize/rollback", handler.Rollback)
	app.Post("/organize/:id", handler.PlaceItem)
	return app, mockService
}

func TestPlaceItem_Scenarios(t *testing.T) {
	app, mockService := newOrganizeApp()

	tests := []struct {
		name         string
		url          string
		setupMock    func()
		expectedCode int
	}{
		{
			name: "Place item",
			url:  "/organize/1",
			setupMock: func() {
				mockService.On("Place", uint(1), false).Return(&dto.PlacementResult{
					ItemID:          1,
					Success:         true,
					Operation:       "move",
					DestinationPath: "/archive/2025-12/Error/shot.png",
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Simulated placement",
			url:  "/organize/1?simulate=true",
			setupMock: func() {
				mockService.On("Place", uint(1), true).Return(&dto.PlacementResult{
					ItemID:    1,
					Success:   true,
					Simulated: true,
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Item not found",
			url:  "/organize/999",
			setupMock: func() {
				mockService.On("Place", uint(999), false).Return(nil, services.ErrNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Name space exhausted",
			url:  "/organize/2",
			setupMock: func() {
				mockService.On("Place", uint(2), false).Return(nil, services.ErrTooManyDuplicates).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Invalid ID",
			url:          "/organize/nope",
			setupMock:    func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, tt.url, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}

func TestRollback_Scenarios(t *testing.T) {
	app, mockService := newOrganizeApp()

	tests := []struct {
		name          string
		input         map[string]interface{}
		setupMock     func()
		expectedCode  int
		expectedCount int
	}{
		{
			name:  "Explicit window in hours",
			input: map[string]interface{}{"hours": 48},
			setupMock: func() {
				mockService.On("Rollback", mock.MatchedBy(func(since time.Time) bool {
					return time.Since(since) > 47*time.Hour && time.Since(since) < 49*time.Hour
				})).Return(3, nil).Once()
			},
			expectedCode:  http.StatusOK,
			expectedCount: 3,
		},
		{
			name:  "Explicit timestamp",
			input: map[string]interface{}{"since": "2025-12-01T00:00:00Z"},
			setupMock: func() {
				mockService.On("Rollback",
					time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)).Return(1, nil).Once()
			},
			expectedCode:  http.StatusOK,
			expectedCount: 1,
		},
		{
			name:  "Default 24 hour window",
			input: map[string]interface{}{},
			setupMock: func() {
				mockService.On("Rollback", mock.MatchedBy(func(since time.Time) bool {
					return time.Since(since) > 23*time.Hour && time.Since(since) < 25*time.Hour
				})).Return(0, nil).Once()
			},
			expectedCode:  http.StatusOK,
			expectedCount: 0,
		},
		{
			name:         "Bad timestamp",
			input:        map[string]interface{}{"since": "yesterday"},
			setupMock:    func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			reqBody, _ := json.Marshal(tt.input)
			req := httptest.NewRequest(http.MethodPost, "/organize/rollback", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			if tt.expectedCode == http.StatusOK {
				var result map[string]int
				body, _ := io.ReadAll(resp.Body)
				assert.NoError(t, json.Unmarshal(body, &result))
				assert.Equal(t, tt.expectedCount, result["count"])
			}

			mockService.AssertExpectations(t)
		})
	}
}
