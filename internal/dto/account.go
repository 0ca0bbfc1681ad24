package dto

import (
	"time"

	"github.com/GlebRadaev/digishop/internal/domain"
)

type AccountResponseDTO struct {
	UserID    int64     `json:"user_id" example:"7"`
	Handle    string    `json:"handle" example:"alice"`
	Balance   int64     `json:"balance" example:"35000"`
	CreatedAt time.Time `json:"created_at" example:"2025-03-01T12:00:00Z"`
}

func NewAccountResponse(a *domain.Account) AccountResponseDTO {
	return AccountResponseDTO{
		UserID:    a.UserID,
		Handle:    a.Handle,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

type BalanceResponseDTO struct {
	Balance int64 `json:"balance" example:"35000"`
}
