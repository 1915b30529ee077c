package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rukshanl/product-order-api/internal/models"
	"github.com/rukshanl/product-order-api/internal/repository"
	"github.com/rukshanl/product-order-api/internal/service"
)

// BasePath is the TMF API prefix all order routes are rooted at.
const BasePath = "/tmf-api/productOrderingManagement/v5/productOrder"

// OrderHandler handles product-order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST {BasePath}/productOrder
// Responses per the TMF ordering API:
// - 201: order created, Location header set, stored document returned
// - 400: missing/malformed body or normalization failure
// - 500: store error
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order *models.ProductOrder

	// Decoding into a pointer distinguishes a JSON null body (order stays
	// nil) from an empty object, which proceeds to normalization.
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil || order == nil {
		h.log.Warn("rejected order payload", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid or missing JSON payload", h.log)
		return
	}

	created, err := h.orderService.CreateOrder(r.Context(), order)
	if err != nil {
		if isValidationError(err) {
			h.log.Warn("order failed validation", "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
			return
		}

		h.log.Error("failed to create order", "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/productOrder/%s", BasePath, created.ID))
	WriteJSON(w, http.StatusCreated, created, h.log)
	h.log.Info("order created", "order_id", created.ID, "items_count", len(created.ProductOrderItem))
}

// ListOrders handles GET {BasePath}/productOrder
// Supports exact-match filters on state, completionDate and creationDate,
// and optional field projection via the fields parameter.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.OrderFilter{
		State:          query.Get("state"),
		CompletionDate: query.Get("completionDate"),
		CreationDate:   query.Get("creationDate"),
	}

	orders, err := h.orderService.ListOrders(r.Context(), filter)
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	if fields := parseFields(query.Get("fields")); fields != nil {
		projected, err := projectOrders(orders, fields)
		if err != nil {
			h.log.Error("failed to project orders", "error", err)
			WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
			return
		}
		WriteJSON(w, http.StatusOK, projected, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET {BasePath}/productOrder/{id}
// - 200: order found, optionally projected
// - 400: empty id or the literal string "undefined"
// - 404: no order with the given id
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if orderID == "" || orderID == "undefined" {
		h.log.Warn("invalid order id in url", "order_id", orderID)
		WriteError(w, http.StatusBadRequest, "Missing or invalid order ID in URL", h.log)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			h.log.Info("order not found", "order_id", orderID)
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Order %s not found", orderID), h.log)
			return
		}

		h.log.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	if fields := parseFields(r.URL.Query().Get("fields")); fields != nil {
		projected, err := projectOrder(*order, fields)
		if err != nil {
			h.log.Error("failed to project order", "order_id", orderID, "error", err)
			WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
			return
		}
		WriteJSON(w, http.StatusOK, projected, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}

// isValidationError reports whether the error came from payload
// normalization rather than the store.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrMissingType) ||
		errors.Is(err, service.ErrMissingOrderItems) ||
		errors.Is(err, service.ErrMissingProduct) ||
		errors.Is(err, service.ErrInvalidCharValue)
}
