package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/digishop/docs"
	accounthandlers "github.com/GlebRadaev/digishop/internal/handlers/accounts"
	adminhandlers "github.com/GlebRadaev/digishop/internal/handlers/admin"
	cataloghandlers "github.com/GlebRadaev/digishop/internal/handlers/catalog"
	deposithandlers "github.com/GlebRadaev/digishop/internal/handlers/deposits"
	ordershandlers "github.com/GlebRadaev/digishop/internal/handlers/orders"
	"github.com/GlebRadaev/digishop/internal/service"
	"github.com/GlebRadaev/digishop/pkg/auth"
	"github.com/GlebRadaev/digishop/pkg/metrics"
)

type AccountHandler interface {
	Ensure(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type CatalogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	AddOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
}

type DepositHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type Authenticator interface {
	Authenticate(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

type Handlers struct {
	AccountHandler AccountHandler
	CatalogHandler CatalogHandler
	OrderHandler   OrderHandler
	DepositHandler DepositHandler
	AdminHandler   AdminHandler
	Auth           Authenticator
}

func New(s *service.Services, authenticator *auth.Middleware) *Handlers {
	return &Handlers{
		AccountHandler: accounthandlers.New(s.AccountService),
		CatalogHandler: cataloghandlers.New(s.CatalogService),
		OrderHandler:   ordershandlers.New(s.OrderService),
		DepositHandler: deposithandlers.New(s.DepositService),
		AdminHandler:   adminhandlers.New(s.AdminService),
		Auth:           authenticator,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.InstrumentHandler,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(h.Auth.Authenticate)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.AccountHandler.Ensure)
			r.Get("/me", h.AccountHandler.Me)
			r.Get("/me/balance", h.AccountHandler.Balance)
		})
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.CatalogHandler.List)
			r.Get("/{id}", h.CatalogHandler.Get)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.OrderHandler.AddOrder)
			r.Get("/", h.OrderHandler.GetOrders)
			r.Get("/{id}", h.OrderHandler.GetOrder)
		})
		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", h.DepositHandler.Create)
			r.Get("/", h.DepositHandler.List)
			r.Get("/{id}", h.DepositHandler.Get)
		})
		r.Route("/admin/deposits/{id}", func(r chi.Router) {
			r.Use(h.Auth.RequireAdmin)
			r.Post("/approve", h.AdminHandler.Approve)
			r.Post("/reject", h.AdminHandler.Reject)
		})
	})

	return r
}
