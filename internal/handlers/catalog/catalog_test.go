package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
)

func NewMock(t *testing.T) (*CatalogHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestList(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().ListEnabled(gomock.Any()).Return([]domain.Service{
		{ID: "zalo-data-1", Name: "Zalo+Data 1 day", Price: 15000, Enabled: true},
		{ID: "vip-support", Name: "VIP support (month)", Price: 90000, Enabled: true},
	}, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.ServiceResponseDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []dto.ServiceResponseDTO{
		{ID: "zalo-data-1", Name: "Zalo+Data 1 day", Price: 15000, Enabled: true},
		{ID: "vip-support", Name: "VIP support (month)", Price: 90000, Enabled: true},
	}, body)
}

func TestList_Empty(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().ListEnabled(gomock.Any()).Return(nil, nil)
	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGet(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Found",
			id:   "zalo-data-1",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), "zalo-data-1").
					Return(&domain.Service{ID: "zalo-data-1", Price: 15000, Enabled: true}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown service",
			id:   "nope",
			prepareMock: func() {
				service.EXPECT().Get(gomock.Any(), "nope").Return(nil, domain.ErrServiceNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.Get(w, withID(httptest.NewRequest(http.MethodGet, "/api/catalog/"+tt.id, nil), tt.id))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
