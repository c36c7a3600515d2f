package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore/models"
)

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(OrdersCollection)}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, order)
	return err
}

func (s *OrderStore) FindByEmail(ctx context.Context, email string) ([]models.Order, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Totals returns only the price and timestamp of every order.
func (s *OrderStore) Totals(ctx context.Context) ([]models.OrderTotal, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "totalPrice": 1, "createdAt": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	totals := []models.OrderTotal{}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}
