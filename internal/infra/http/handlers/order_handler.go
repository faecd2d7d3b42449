package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type OrderStatusUpdater interface {
	Execute(ctx context.Context, input usecase.UpdateOrderStatusInput) (*entity.Order, error)
}

type OrderHandler struct {
	OrderRepo      entity.OrderRepositoryInterface
	UpdateStatusUC OrderStatusUpdater
}

func NewOrderHandler(repo entity.OrderRepositoryInterface, updateStatusUC OrderStatusUpdater) *OrderHandler {
	return &OrderHandler{OrderRepo: repo, UpdateStatusUC: updateStatusUC}
}

// HandleGet (GET /orders/{orderNumber})
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := h.OrderRepo.FindByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			writeErrorResponse(w, http.StatusNotFound, usecase.CodeOrderNotFound, "order not found")
			return
		}
		log.Printf("❌ [ORDER] erro ao buscar pedido %s: %v", orderNumber, err)
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabase, "failed to load order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": order})
}

// HandleUpdateStatus (PATCH /orders/{orderNumber}/status) é o drop do Kanban.
func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateOrderStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeParse, "invalid JSON")
		return
	}
	input.OrderNumber = chi.URLParam(r, "orderNumber")

	order, err := h.UpdateStatusUC.Execute(r.Context(), input)
	if err != nil {
		log.Printf("❌ [ORDER] falha ao mover pedido %s: %v", input.OrderNumber, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": order})
}
