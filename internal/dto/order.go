package dto

import (
	"time"

	"github.com/GlebRadaev/digishop/internal/domain"
)

type PlaceOrderRequestDTO struct {
	ServiceID string `json:"service_id" example:"zalo-data-1"`
}

type OrderResponseDTO struct {
	ID        string    `json:"id" example:"3f1c2a9e-5d0b-4a7e-9a51-0c6f0b1f6e2d"`
	ServiceID string    `json:"service_id" example:"zalo-data-1"`
	Price     int64     `json:"price" example:"15000"`
	CreatedAt time.Time `json:"created_at" example:"2025-03-01T12:00:00Z"`
}

type PlaceOrderResponseDTO struct {
	Order   OrderResponseDTO `json:"order"`
	Balance int64            `json:"balance" example:"20000"`
}

func NewOrderResponse(o domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:        o.ID,
		ServiceID: o.ServiceID,
		Price:     o.Price,
		CreatedAt: o.CreatedAt,
	}
}
