package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/digishop/internal/handlers/accounts"
	"github.com/GlebRadaev/digishop/internal/handlers/admin"
	"github.com/GlebRadaev/digishop/internal/handlers/catalog"
	"github.com/GlebRadaev/digishop/internal/handlers/deposits"
	"github.com/GlebRadaev/digishop/internal/handlers/orders"
	"github.com/GlebRadaev/digishop/internal/service"
	"github.com/GlebRadaev/digishop/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	services := &service.Services{
		AccountService: accounts.NewMockService(ctrl),
		CatalogService: catalog.NewMockService(ctrl),
		OrderService:   orders.NewMockService(ctrl),
		DepositService: deposits.NewMockService(ctrl),
		AdminService:   admin.NewMockService(ctrl),
	}

	h := New(services, auth.NewMiddleware(auth.NewJWTService("secret"), nil))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	respond := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	mockAccountHandler := NewMockAccountHandler(ctrl)
	mockCatalogHandler := NewMockCatalogHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockDepositHandler := NewMockDepositHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAccountHandler.EXPECT().Ensure(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockAccountHandler.EXPECT().Me(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockAccountHandler.EXPECT().Balance(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockCatalogHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockCatalogHandler.EXPECT().Get(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockOrderHandler.EXPECT().AddOrder(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockOrderHandler.EXPECT().GetOrders(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockOrderHandler.EXPECT().GetOrder(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockDepositHandler.EXPECT().Create(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockDepositHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockDepositHandler.EXPECT().Get(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockAdminHandler.EXPECT().Approve(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()
	mockAdminHandler.EXPECT().Reject(gomock.Any(), gomock.Any()).Do(respond).AnyTimes()

	jwtService := auth.NewJWTService("secret")
	h := &Handlers{
		AccountHandler: mockAccountHandler,
		CatalogHandler: mockCatalogHandler,
		OrderHandler:   mockOrderHandler,
		DepositHandler: mockDepositHandler,
		AdminHandler:   mockAdminHandler,
		Auth:           auth.NewMiddleware(jwtService, map[int64]struct{}{1: {}}),
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	customer, _ := jwtService.GenerateJWT(7, "alice", time.Now().Add(time.Hour))
	boss, _ := jwtService.GenerateJWT(1, "boss", time.Now().Add(time.Hour))

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/accounts", "", http.StatusUnauthorized},
		{"GET", "/api/orders", "", http.StatusUnauthorized},
		{"POST", "/api/admin/deposits/dep-1/approve", "", http.StatusUnauthorized},
		{"POST", "/api/accounts", customer, http.StatusOK},
		{"GET", "/api/accounts/me", customer, http.StatusOK},
		{"GET", "/api/accounts/me/balance", customer, http.StatusOK},
		{"GET", "/api/catalog", customer, http.StatusOK},
		{"GET", "/api/catalog/zalo-data-1", customer, http.StatusOK},
		{"POST", "/api/orders", customer, http.StatusOK},
		{"GET", "/api/orders", customer, http.StatusOK},
		{"GET", "/api/orders/order-1", customer, http.StatusOK},
		{"POST", "/api/deposits", customer, http.StatusOK},
		{"GET", "/api/deposits", customer, http.StatusOK},
		{"GET", "/api/deposits/dep-1", customer, http.StatusOK},
		{"POST", "/api/admin/deposits/dep-1/approve", customer, http.StatusForbidden},
		{"POST", "/api/admin/deposits/dep-1/reject", customer, http.StatusForbidden},
		{"POST", "/api/admin/deposits/dep-1/approve", boss, http.StatusOK},
		{"POST", "/api/admin/deposits/dep-1/reject", boss, http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
