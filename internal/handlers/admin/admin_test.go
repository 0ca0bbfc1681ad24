package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
	"github.com/GlebRadaev/digishop/pkg/auth"
)

var (
	createdAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	boss      = domain.Actor{UserID: 1, Admin: true}
)

func NewMock(t *testing.T) (*AdminHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func newRequest(target, body string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "dep-1")
	ctx := context.WithValue(auth.WithActor(context.Background(), boss, "boss"), chi.RouteCtxKey, rctx)
	return httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body)).WithContext(ctx)
}

func TestApprove(t *testing.T) {
	handler, service := NewMock(t)
	approved := &domain.Deposit{ID: "dep-1", UserID: 7, Amount: 50000, Status: domain.DepositApproved, CreatedAt: createdAt}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  *dto.ApproveDepositResponseDTO
	}{
		{
			name: "Approved and credited",
			body: `{"amount":50000}`,
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), boss, "dep-1", int64(50000)).Return(approved, int64(65000), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.ApproveDepositResponseDTO{
				Deposit: dto.DepositResponseDTO{ID: "dep-1", UserID: 7, Amount: 50000, Status: "approved", CreatedAt: createdAt},
				Balance: 65000,
			},
		},
		{
			name:          "Invalid body",
			body:          `amount=5`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Non-positive amount",
			body: `{"amount":0}`,
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), boss, "dep-1", int64(0)).Return(nil, int64(0), domain.ErrInvalidAmount)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: domain.ErrInvalidAmount.Error(),
		},
		{
			name: "Already processed",
			body: `{"amount":50000}`,
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), boss, "dep-1", int64(50000)).Return(nil, int64(0), domain.ErrAlreadyProcessed)
			},
			expectedCode:  http.StatusConflict,
			expectedError: domain.ErrAlreadyProcessed.Error(),
		},
		{
			name: "Unknown deposit",
			body: `{"amount":50000}`,
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), boss, "dep-1", int64(50000)).Return(nil, int64(0), domain.ErrDepositNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Storage failure",
			body: `{"amount":50000}`,
			prepareMock: func() {
				service.EXPECT().Approve(gomock.Any(), boss, "dep-1", int64(50000)).
					Return(nil, int64(0), domain.StorageFailure(errors.New("commit failed")))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.Approve(w, newRequest("/api/admin/deposits/dep-1/approve", tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedBody != nil {
				var body dto.ApproveDepositResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, *tt.expectedBody, body)
			}
		})
	}
}

func TestReject(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().Reject(gomock.Any(), boss, "dep-1").
		Return(&domain.Deposit{ID: "dep-1", UserID: 7, Status: domain.DepositRejected, CreatedAt: createdAt}, nil)
	w := httptest.NewRecorder()
	handler.Reject(w, newRequest("/api/admin/deposits/dep-1/reject", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.DepositResponseDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "rejected", body.Status)

	service.EXPECT().Reject(gomock.Any(), boss, "dep-1").Return(nil, domain.ErrDepositNotFound)
	w = httptest.NewRecorder()
	handler.Reject(w, newRequest("/api/admin/deposits/dep-1/reject", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
