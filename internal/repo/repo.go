package repo

import (
	"github.com/GlebRadaev/digishop/internal/audit"
	"github.com/GlebRadaev/digishop/internal/pg"
	accountrepo "github.com/GlebRadaev/digishop/internal/repo/account-repo"
	catalogrepo "github.com/GlebRadaev/digishop/internal/repo/catalog-repo"
	depositrepo "github.com/GlebRadaev/digishop/internal/repo/deposit-repo"
	orderrepo "github.com/GlebRadaev/digishop/internal/repo/order-repo"
	"github.com/GlebRadaev/digishop/internal/service/accountservice"
	"github.com/GlebRadaev/digishop/internal/service/catalogservice"
	"github.com/GlebRadaev/digishop/internal/service/depositservice"
	"github.com/GlebRadaev/digishop/internal/service/orderservice"
)

type Repositories struct {
	AccountRepo accountservice.Repo
	CatalogRepo catalogservice.Repo
	OrderRepo   orderservice.Repo
	DepositRepo depositservice.Repo
	AuditRepo   audit.Repo
}

func New(conn pg.Database) *Repositories {
	accountRepo := accountrepo.New(conn)

	return &Repositories{
		AccountRepo: accountRepo,
		CatalogRepo: catalogrepo.New(conn),
		OrderRepo:   orderrepo.New(conn),
		DepositRepo: depositrepo.New(conn),
		AuditRepo:   accountRepo,
	}
}
