package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bookstore/apperror"
	"bookstore/events"
	"bookstore/models"
)

type OrderService struct {
	orders OrderStore
	events OrderEvents
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewOrderService wires checkout. ev may be nil when no broker is configured.
func NewOrderService(orders OrderStore, ev OrderEvents, log *zap.SugaredLogger) *OrderService {
	return &OrderService{orders: orders, events: ev, log: log, now: time.Now}
}

// Create validates and stores a new order. totalPrice is stored as sent by
// the client and productIds are not resolved against the catalog.
func (s *OrderService) Create(ctx context.Context, in models.OrderInput) (*models.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &models.Order{
		Name:       in.Name,
		Email:      in.Email,
		Location:   in.Location,
		Phone:      in.Phone,
		ProductIDs: append([]string(nil), in.ProductIDs...),
		TotalPrice: *in.TotalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, apperror.NewInternal("An error occurred while creating the order", err)
	}

	if s.events != nil {
		err := s.events.PublishOrderCreated(ctx, events.OrderCreated{
			OrderID:    order.ID.Hex(),
			Email:      order.Email,
			ProductIDs: order.ProductIDs,
			TotalPrice: order.TotalPrice,
			CreatedAt:  order.CreatedAt,
		})
		if err != nil {
			// the order is already stored
			s.log.Warnw("publish order.created failed", "order_id", order.ID.Hex(), "error", err)
		}
	}
	return order, nil
}

// ByEmail returns every order placed with exactly this email, in no
// particular order. No match yields an empty slice.
func (s *OrderService) ByEmail(ctx context.Context, email string) ([]models.Order, error) {
	orders, err := s.orders.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
