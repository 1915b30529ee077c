package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rukshanl/product-order-api/internal/models"
	"github.com/rukshanl/product-order-api/internal/repository"
)

// OrderService handles product-order business logic on top of the repository.
type OrderService struct {
	repo repository.OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{
		repo: repo,
	}
}

// CreateOrder normalizes and persists a new product order. The creation date
// is server-authoritative: whatever the client sent is replaced before the
// insert. The initial state defaults to inProgress.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.ProductOrder) (*models.ProductOrder, error) {
	if err := NormalizeOrder(order); err != nil {
		return nil, err
	}

	order.CreationDate = time.Now().UTC().Format(time.RFC3339)
	if order.State == "" {
		order.State = models.StateInProgress
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

// ListOrders returns all orders matching the given exact-match filter.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.ProductOrder, error) {
	return s.repo.List(ctx, filter)
}

// GetOrder returns the order with the given domain id.
// Returns repository.ErrOrderNotFound when no such order exists.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.ProductOrder, error) {
	return s.repo.GetByID(ctx, id)
}
