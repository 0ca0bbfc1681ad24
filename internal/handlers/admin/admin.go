package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
	"github.com/GlebRadaev/digishop/pkg/auth"
	"github.com/GlebRadaev/digishop/pkg/utils"
)

type Service interface {
	Approve(ctx context.Context, actor domain.Actor, depositID string, amount int64) (*domain.Deposit, int64, error)
	Reject(ctx context.Context, actor domain.Actor, depositID string) (*domain.Deposit, error)
}

type AdminHandler struct {
	depositService Service
}

func New(depositService Service) *AdminHandler {
	return &AdminHandler{
		depositService: depositService,
	}
}

// Approve godoc
//
//	@Summary		Approve a deposit
//	@Description	Approve a pending deposit with the confirmed amount and credit the owner. Only the first approval credits.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string							true	"Deposit id"
//	@Param			request	body	dto.ApproveDepositRequestDTO	true	"Confirmed amount"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ApproveDepositResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin rights required"
//	@Failure		404	{object}	utils.Response	"Deposit not found"
//	@Failure		409	{object}	utils.Response	"Deposit already processed"
//	@Failure		422	{object}	utils.Response	"Amount must be positive"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/admin/deposits/{id}/approve [post]
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.ApproveDepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	deposit, balance, err := h.depositService.Approve(r.Context(), actor, chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ApproveDepositResponseDTO{
		Deposit: dto.NewDepositResponse(*deposit),
		Balance: balance,
	})
}

// Reject godoc
//
//	@Summary		Reject a deposit
//	@Description	Reject a pending deposit. Rejecting a processed deposit changes nothing and returns it as is.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	string	true	"Deposit id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin rights required"
//	@Failure		404	{object}	utils.Response	"Deposit not found"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/admin/deposits/{id}/reject [post]
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	deposit, err := h.depositService.Reject(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewDepositResponse(*deposit))
}
