package deposits

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
	"github.com/GlebRadaev/digishop/pkg/auth"
	"github.com/GlebRadaev/digishop/pkg/utils"
)

type Service interface {
	CreateRequest(ctx context.Context, userID int64) (*domain.Deposit, error)
	GetRequest(ctx context.Context, depositID string) (*domain.Deposit, error)
	ListRequests(ctx context.Context, userID int64) ([]domain.Deposit, error)
}

type DepositHandler struct {
	depositService Service
}

func New(depositService Service) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// Create godoc
//
//	@Summary		Request a deposit
//	@Description	Open a pending deposit request. The amount is set by an admin on approval.
//	@Tags			Deposits
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	dto.DepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/deposits [post]
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	deposit, err := h.depositService.CreateRequest(r.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewDepositResponse(*deposit))
}

// List godoc
//
//	@Summary		List the caller's deposits
//	@Tags			Deposits
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.DepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/deposits [get]
func (h *DepositHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	deposits, err := h.depositService.ListRequests(r.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.DepositResponseDTO, 0, len(deposits))
	for _, d := range deposits {
		response = append(response, dto.NewDepositResponse(d))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get a deposit
//	@Description	Customers see only their own deposits; admins see any.
//	@Tags			Deposits
//	@Produce		json
//	@Param			id	path	string	true	"Deposit id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Deposit not found"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/deposits/{id} [get]
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	deposit, err := h.depositService.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if deposit.UserID != actor.UserID && !actor.Admin {
		utils.RespondWithDomainError(w, domain.ErrDepositNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewDepositResponse(*deposit))
}
