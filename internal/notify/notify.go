package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/config"
	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/pkg/clients"
	"github.com/GlebRadaev/digishop/pkg/metrics"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	queueSize     = 100

	KindDepositApproved = "deposit_approved"
)

type Event struct {
	Kind      string `json:"kind"`
	DepositID string `json:"deposit_id"`
	UserID    int64  `json:"user_id"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
}

// Service delivers user notifications to the chat gateway webhook in the
// background. Delivery failures are logged and never reach the caller.
type Service struct {
	url        string
	client     clients.HTTPClientI
	workerPool WorkerPoolI
	sleep      func(time.Duration)
}

func New(cfg *config.Config, client clients.HTTPClientI) *Service {
	workers := cfg.NotifyWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		url:        cfg.NotifyWebhookURL,
		client:     client,
		workerPool: NewWorkerPool(workers, queueSize),
		sleep:      time.Sleep,
	}
}

func (s *Service) DepositApproved(ctx context.Context, deposit domain.Deposit, balance int64) {
	event := Event{
		Kind:      KindDepositApproved,
		DepositID: deposit.ID,
		UserID:    deposit.UserID,
		Amount:    deposit.Amount,
		Balance:   balance,
	}
	ctx = context.WithoutCancel(ctx)
	err := s.workerPool.TryAddTask(func() error {
		err := s.deliver(ctx, event)
		metrics.ObserveNotification(err)
		return err
	})
	if err != nil {
		metrics.ObserveNotification(err)
		zap.L().Warn("Notification dropped", zap.String("deposit_id", deposit.ID), zap.Error(err))
	}
}

// Close waits for queued notifications to be delivered.
func (s *Service) Close() {
	s.workerPool.Close()
}

func (s *Service) deliver(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, respHeaders, err := s.client.PostJSON(ctx, s.url, body)
		switch {
		case err != nil:
			zap.L().Warn("Notification delivery failed", zap.String("deposit_id", event.DepositID), zap.Int("attempt", attempt), zap.Error(err))
		case statusCode == http.StatusTooManyRequests:
			if attempt < maxRetries {
				s.sleep(retryAfter(respHeaders, attempt))
				continue
			}
		case statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices:
			zap.L().Debug("Notification delivered", zap.String("deposit_id", event.DepositID), zap.Int64("user_id", event.UserID))
			return nil
		case statusCode < http.StatusInternalServerError:
			return fmt.Errorf("notification for deposit %s rejected with status %d", event.DepositID, statusCode)
		}
		if attempt < maxRetries {
			s.sleep(retryInterval * time.Duration(attempt))
		}
	}
	return fmt.Errorf("failed to deliver notification for deposit %s after %d retries", event.DepositID, maxRetries)
}

func retryAfter(headers http.Header, attempt int) time.Duration {
	wait := retryInterval * time.Duration(attempt)
	if value := headers.Get("Retry-After"); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			wait = time.Duration(seconds) * time.Second
		}
	}
	return wait
}

// Noop is used when no webhook is configured.
type Noop struct{}

func (Noop) DepositApproved(context.Context, domain.Deposit, int64) {}

func (Noop) Close() {}
