package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
	"github.com/GlebRadaev/digishop/pkg/utils"
)

type Service interface {
	ListEnabled(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, serviceID string) (*domain.Service, error)
}

type CatalogHandler struct {
	catalogService Service
}

func New(catalogService Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List godoc
//
//	@Summary		List purchasable services
//	@Description	Return enabled services in catalog order.
//	@Tags			Catalog
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.ServiceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/catalog [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListEnabled(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.ServiceResponseDTO, 0, len(services))
	for _, s := range services {
		response = append(response, dto.NewServiceResponse(s))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get a service
//	@Description	Return one service by id, whether or not it is enabled.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path	string	true	"Service id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ServiceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Service not found"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/catalog/{id} [get]
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	service, err := h.catalogService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewServiceResponse(*service))
}
