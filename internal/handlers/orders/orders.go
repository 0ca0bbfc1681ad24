package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/dto"
	"github.com/GlebRadaev/digishop/pkg/auth"
	"github.com/GlebRadaev/digishop/pkg/utils"
)

type Service interface {
	PlaceOrder(ctx context.Context, userID int64, serviceID string) (*domain.Order, int64, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID int64, orderID string) (*domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// AddOrder godoc
//
//	@Summary		Buy a service
//	@Description	Charge the caller the current catalog price and record the order.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.PlaceOrderRequestDTO	true	"Service to buy"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.PlaceOrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient funds"
//	@Failure		404	{object}	utils.Response	"Service not found"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/orders [post]
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	serviceID := strings.TrimSpace(req.ServiceID)
	if serviceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Service id is required")
		return
	}

	order, balance, err := h.orderService.PlaceOrder(r.Context(), actor.UserID, serviceID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.PlaceOrderResponseDTO{
		Order:   dto.NewOrderResponse(*order),
		Balance: balance,
	})
}

// GetOrders godoc
//
//	@Summary		Get orders list for user
//	@Description	Retrieve the caller's orders, newest first
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Success		204	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	orders, err := h.orderService.ListOrders(r.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		response = append(response, dto.NewOrderResponse(order))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary		Get one order
//	@Description	Retrieve one of the caller's orders
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	string	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	order, err := h.orderService.GetOrder(r.Context(), actor.UserID, chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOrderResponse(*order))
}
