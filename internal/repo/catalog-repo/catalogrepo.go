package catalogrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) ListEnabled(ctx context.Context) ([]domain.Service, error) {
	query := `
		SELECT id, name, price, enabled
		FROM services
		WHERE enabled
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list services", zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Enabled); err != nil {
			zap.L().Error("can't scan service row", zap.Error(err))
			return nil, domain.StorageFailure(err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure(err)
	}
	return services, nil
}

// FindByID looks a service up regardless of its enabled flag.
func (r *Repository) FindByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	query := `
		SELECT id, name, price, enabled
		FROM services
		WHERE id = $1
	`
	var s domain.Service
	err := r.db.QueryRow(ctx, query, serviceID).Scan(&s.ID, &s.Name, &s.Price, &s.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find service", zap.String("service_id", serviceID), zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	return &s, nil
}
