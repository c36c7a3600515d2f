// Package events publishes order lifecycle messages to RabbitMQ.
package events

import "time"

const OrderCreatedQueue = "order.created"

type OrderCreated struct {
	OrderID    string    `json:"orderId"`
	Email      string    `json:"email"`
	ProductIDs []string  `json:"productIds"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}
