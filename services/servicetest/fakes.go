// Package servicetest provides in-memory stores for tests of the services
// and the HTTP layer.
package servicetest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore/database"
	"bookstore/events"
	"bookstore/models"
)

type UserStore struct {
	mu      sync.Mutex
	byName  map[string]models.User
	Inserts int
	Updates int
	Err     error
}

func NewUserStore() *UserStore {
	return &UserStore{byName: map[string]models.User{}}
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.byName[username]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.byName[user.Username]; ok {
		return database.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.Inserts++
	s.byName[user.Username] = *user
	return nil
}

func (s *UserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	cur, ok := s.byName[user.Username]
	if !ok || cur.ID != user.ID {
		return database.ErrNotFound
	}
	s.Updates++
	s.byName[user.Username] = *user
	return nil
}

type BookStore struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]models.Book
	Err   error
}

func NewBookStore(books ...models.Book) *BookStore {
	s := &BookStore{books: map[primitive.ObjectID]models.Book{}}
	for _, b := range books {
		if b.ID.IsZero() {
			b.ID = primitive.NewObjectID()
		}
		s.books[b.ID] = b
	}
	return s
}

func (s *BookStore) FindAll(context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Book{}
	for _, b := range s.books {
		out = append(out, b)
	}
	return out, nil
}

func (s *BookStore) FindByID(_ context.Context, id string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, database.ErrNotFound
	}
	b, ok := s.books[oid]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (s *BookStore) Insert(_ context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	s.books[book.ID] = *book
	return nil
}

func (s *BookStore) Update(_ context.Context, id string, upd models.BookUpdate, now time.Time) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, database.ErrNotFound
	}
	b, ok := s.books[oid]
	if !ok {
		return nil, database.ErrNotFound
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Author != nil {
		b.Author = *upd.Author
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	if upd.Trending != nil {
		b.Trending = *upd.Trending
	}
	if upd.CoverImage != nil {
		b.CoverImage = *upd.CoverImage
	}
	if upd.OldPrice.Set {
		b.OldPrice = upd.OldPrice.Value
	}
	if upd.NewPrice != nil {
		b.NewPrice = *upd.NewPrice
	}
	if upd.Rating != nil {
		b.Rating = *upd.Rating
	}
	b.UpdatedAt = now
	s.books[oid] = b
	return &b, nil
}

func (s *BookStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	_, ok := s.books[oid]
	delete(s.books, oid)
	return ok, nil
}

func (s *BookStore) Count(_ context.Context, trendingOnly bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, b := range s.books {
		if !trendingOnly || b.Trending {
			n++
		}
	}
	return n, nil
}

type OrderStore struct {
	mu     sync.Mutex
	orders []models.Order
	Err    error
}

func NewOrderStore(orders ...models.Order) *OrderStore {
	return &OrderStore{orders: orders}
}

func (s *OrderStore) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *OrderStore) FindByEmail(_ context.Context, email string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Order{}
	for _, o := range s.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderStore) Totals(context.Context) ([]models.OrderTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.OrderTotal, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, models.OrderTotal{TotalPrice: o.TotalPrice, CreatedAt: o.CreatedAt})
	}
	return out, nil
}

func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	Err     error
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: map[string]time.Time{}}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	until, ok := s.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}

type Events struct {
	mu        sync.Mutex
	Published []events.OrderCreated
	Err       error
}

func (e *Events) PublishOrderCreated(_ context.Context, ev events.OrderCreated) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.Published = append(e.Published, ev)
	return nil
}
