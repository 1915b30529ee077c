package repository

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rukshanl/product-order-api/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrDuplicateID   = errors.New("order id already exists")
)

// OrderFilter holds the exact-match query filters supported by List.
// Empty fields are not applied; set fields are ANDed together.
type OrderFilter struct {
	State          string
	CompletionDate string
	CreationDate   string
}

// OrderRepository defines the interface for product-order data access.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.ProductOrder) error
	List(ctx context.Context, filter OrderFilter) ([]models.ProductOrder, error)
	GetByID(ctx context.Context, id string) (*models.ProductOrder, error)
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage.
// It backs tests and local development without a running document store.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.ProductOrder
	ids    []string // insertion order
}

// NewInMemoryOrderRepository creates an empty in-memory order repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.ProductOrder),
	}
}

// Insert stores a new order, assigning storage metadata. The domain id must
// be unique.
func (r *InMemoryOrderRepository) Insert(ctx context.Context, order *models.ProductOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return ErrDuplicateID
	}

	order.ObjectID = primitive.NewObjectID()
	r.orders[order.ID] = *order
	r.ids = append(r.ids, order.ID)
	return nil
}

// List returns all orders matching the filter, in insertion order.
func (r *InMemoryOrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.ProductOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.ProductOrder, 0, len(r.ids))
	for _, id := range r.ids {
		order := r.orders[id]
		if filter.State != "" && order.State != filter.State {
			continue
		}
		if filter.CompletionDate != "" && order.CompletionDate != filter.CompletionDate {
			continue
		}
		if filter.CreationDate != "" && order.CreationDate != filter.CreationDate {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

// GetByID returns the order with the given domain id.
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.ProductOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}
