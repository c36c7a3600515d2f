package services

import (
	"context"
	"time"

	"bookstore/events"
	"bookstore/models"
)

// Store contracts. The database package provides the Mongo and Redis
// implementations and the ErrNotFound/ErrDuplicate sentinels they return.

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type BookStore interface {
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	Insert(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, id string, upd models.BookUpdate, now time.Time) (*models.Book, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, trendingOnly bool) (int64, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByEmail(ctx context.Context, email string) ([]models.Order, error)
	Totals(ctx context.Context) ([]models.OrderTotal, error)
}

type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type OrderEvents interface {
	PublishOrderCreated(ctx context.Context, ev events.OrderCreated) error
}
