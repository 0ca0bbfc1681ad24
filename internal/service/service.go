package service

import (
	"github.com/GlebRadaev/digishop/internal/handlers/accounts"
	"github.com/GlebRadaev/digishop/internal/handlers/admin"
	"github.com/GlebRadaev/digishop/internal/handlers/catalog"
	"github.com/GlebRadaev/digishop/internal/handlers/deposits"
	"github.com/GlebRadaev/digishop/internal/handlers/orders"
	"github.com/GlebRadaev/digishop/internal/pg"
	"github.com/GlebRadaev/digishop/internal/repo"
	"github.com/GlebRadaev/digishop/internal/service/accountservice"
	"github.com/GlebRadaev/digishop/internal/service/catalogservice"
	"github.com/GlebRadaev/digishop/internal/service/depositservice"
	"github.com/GlebRadaev/digishop/internal/service/orderservice"
)

type Services struct {
	AccountService accounts.Service
	CatalogService catalog.Service
	OrderService   orders.Service
	DepositService deposits.Service
	AdminService   admin.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, notifier depositservice.Notifier) *Services {
	accountService := accountservice.New(repo.AccountRepo)
	catalogService := catalogservice.New(repo.CatalogRepo)
	orderService := orderservice.New(repo.OrderRepo, catalogService, accountService, txManager)
	depositService := depositservice.New(repo.DepositRepo, accountService, txManager, notifier)

	return &Services{
		AccountService: accountService,
		CatalogService: catalogService,
		OrderService:   orderService,
		DepositService: depositService,
		AdminService:   depositService,
	}
}
