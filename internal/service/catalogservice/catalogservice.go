package catalogservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/domain"
)

type Repo interface {
	ListEnabled(ctx context.Context) ([]domain.Service, error)
	FindByID(ctx context.Context, serviceID string) (*domain.Service, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) ListEnabled(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.ListEnabled(ctx)
	if err != nil {
		zap.L().Error("failed to list services", zap.Error(err))
		return nil, err
	}
	return services, nil
}

// Get resolves a service by id whether or not it is enabled; purchases of a
// service that was listed and then disabled are still honoured.
func (s *Service) Get(ctx context.Context, serviceID string) (*domain.Service, error) {
	service, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		zap.L().Error("failed to get service", zap.String("service_id", serviceID), zap.Error(err))
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrServiceNotFound
	}
	return service, nil
}
