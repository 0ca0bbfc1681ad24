package dto

import "github.com/GlebRadaev/digishop/internal/domain"

type ServiceResponseDTO struct {
	ID      string `json:"id" example:"zalo-data-1"`
	Name    string `json:"name" example:"Zalo+Data 1 day"`
	Price   int64  `json:"price" example:"15000"`
	Enabled bool   `json:"enabled" example:"true"`
}

func NewServiceResponse(s domain.Service) ServiceResponseDTO {
	return ServiceResponseDTO{ID: s.ID, Name: s.Name, Price: s.Price, Enabled: s.Enabled}
}
