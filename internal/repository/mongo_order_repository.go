package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rukshanl/product-order-api/internal/models"
)

// MongoOrderRepository implements OrderRepository backed by a MongoDB
// collection. Uniqueness of the domain id is enforced by a unique index.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a repository over the productOrders
// collection of the given database.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("productOrders"),
	}
}

// EnsureIndexes creates the unique index on the domain id field. Called once
// at startup; index creation is idempotent.
func (r *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create id index: %w", err)
	}
	return nil
}

// Insert stores a new order and sets the storage-assigned _id on it.
func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.ProductOrder) error {
	order.ObjectID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// List returns all orders matching the filter.
func (r *MongoOrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.ProductOrder, error) {
	query := bson.M{}
	if filter.State != "" {
		query["state"] = filter.State
	}
	if filter.CompletionDate != "" {
		query["completionDate"] = filter.CompletionDate
	}
	if filter.CreationDate != "" {
		query["creationDate"] = filter.CreationDate
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	orders := make([]models.ProductOrder, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID returns the order with the given domain id.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.ProductOrder, error) {
	var order models.ProductOrder

	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
