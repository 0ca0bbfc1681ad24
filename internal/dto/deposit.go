package dto

import (
	"time"

	"github.com/GlebRadaev/digishop/internal/domain"
)

type DepositResponseDTO struct {
	ID        string    `json:"id" example:"9b2f4c1e-7a3d-4e8b-b6c0-2d5e8f1a4c7b"`
	UserID    int64     `json:"user_id" example:"7"`
	Amount    int64     `json:"amount" example:"50000"`
	Status    string    `json:"status" example:"pending"`
	CreatedAt time.Time `json:"created_at" example:"2025-03-01T12:00:00Z"`
}

type ApproveDepositRequestDTO struct {
	Amount int64 `json:"amount" example:"50000"`
}

type ApproveDepositResponseDTO struct {
	Deposit DepositResponseDTO `json:"deposit"`
	Balance int64              `json:"balance" example:"65000"`
}

func NewDepositResponse(d domain.Deposit) DepositResponseDTO {
	return DepositResponseDTO{
		ID:        d.ID,
		UserID:    d.UserID,
		Amount:    d.Amount,
		Status:    d.Status.String(),
		CreatedAt: d.CreatedAt,
	}
}
