package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	Address string `bson:"address" json:"address" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	Country string `bson:"country" json:"country" validate:"required"`
	State   string `bson:"state" json:"state" validate:"required"`
	Zipcode string `bson:"zipcode" json:"zipcode" validate:"required"`
}

// Order is written once at checkout. ProductIDs are weak references into
// the books collection and are stored exactly as supplied.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Location   Location           `bson:"location" json:"location"`
	Phone      string             `bson:"phone" json:"phone"`
	ProductIDs []string           `bson:"productIds" json:"productIds"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderInput struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required"`
	Location   Location `json:"location"`
	Phone      string   `json:"phone" validate:"required"`
	ProductIDs []string `json:"productIds" validate:"required,min=1,dive,required"`
	TotalPrice *float64 `json:"totalPrice" validate:"required"`
}

// OrderTotal is the projection the stats report is computed from.
type OrderTotal struct {
	TotalPrice float64   `bson:"totalPrice"`
	CreatedAt  time.Time `bson:"createdAt"`
}
