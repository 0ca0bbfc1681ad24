package accounts

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
	"github.com/GlebRadaev/digishop/pkg/auth"
	"github.com/GlebRadaev/digishop/pkg/utils"
)

type Service interface {
	EnsureAccount(ctx context.Context, userID int64, handle string) (*domain.Account, error)
	GetAccount(ctx context.Context, userID int64) (*domain.Account, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
}

type AccountHandler struct {
	accountService Service
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Ensure godoc
//
//	@Summary		Register the caller
//	@Description	Create the caller's account on first contact. Repeated calls keep the stored handle and balance.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/accounts [post]
func (h *AccountHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	account, err := h.accountService.EnsureAccount(r.Context(), actor.UserID, auth.HandleFromContext(r.Context()))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(account))
}

// Me godoc
//
//	@Summary		Get the caller's account
//	@Description	Return the caller's account and balance. Unknown users get a zero balance.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/accounts/me [get]
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	account, err := h.accountService.GetAccount(r.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(account))
}

// Balance godoc
//
//	@Summary		Get the caller's balance
//	@Description	Return only the caller's balance. Unknown users get zero and no account is created.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/accounts/me/balance [get]
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	balance, err := h.accountService.GetBalance(r.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}
