package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/audit"
	"github.com/GlebRadaev/digishop/internal/config"
	"github.com/GlebRadaev/digishop/internal/handlers"
	"github.com/GlebRadaev/digishop/internal/notify"
	"github.com/GlebRadaev/digishop/internal/pg"
	"github.com/GlebRadaev/digishop/internal/repo"
	"github.com/GlebRadaev/digishop/internal/service"
	"github.com/GlebRadaev/digishop/internal/service/depositservice"
	"github.com/GlebRadaev/digishop/pkg/auth"
	"github.com/GlebRadaev/digishop/pkg/clients"
	"github.com/GlebRadaev/digishop/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Notifier interface {
	depositservice.Notifier
	Close()
}

type Application struct {
	cfg      *config.Config
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	pool     *pgxpool.Pool
	notifier Notifier
	audit    *audit.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	err = logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		pool.Close()
		return fmt.Errorf("can't run migrations: %w", err)
	}

	a.cfg = cfg
	a.pool = pool
	a.wire(pg.New(pool), pg.NewTXManager(pool))

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startAudit(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) wire(conn pg.Database, txManager pg.TXManager) {
	a.notifier = newNotifier(a.cfg)
	a.repo = repo.New(conn)
	a.srv = service.New(a.repo, txManager, a.notifier)
	a.api = handlers.New(a.srv, auth.NewMiddleware(auth.NewJWTService(a.cfg.JWTSecret), a.cfg.Admins()))
	a.audit = audit.New(a.cfg, a.repo.AuditRepo)
}

func newNotifier(cfg *config.Config) Notifier {
	if cfg.NotifyWebhookURL == "" {
		zap.L().Info("NOTIFY_WEBHOOK_URL is empty, notifications disabled")
		return notify.Noop{}
	}
	return notify.New(cfg, clients.NewHTTPClient())
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
		a.notifier.Close()
		if a.pool != nil {
			a.pool.Close()
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startAudit(ctx context.Context) {
	a.audit.Start(ctx)
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
