package services

import (
	"context"
	"errors"
	"time"

	"bookstore/apperror"
	"bookstore/database"
	"bookstore/models"
)

type BookService struct {
	books BookStore
	now   func() time.Time
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books, now: time.Now}
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch all books", err)
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.NewNotFound("Book not found")
	}
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch the book", err)
	}
	return book, nil
}

func (s *BookService) Create(ctx context.Context, in models.BookInput) (*models.Book, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	book := &models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Category:    in.Category,
		Trending:    *in.Trending,
		CoverImage:  in.CoverImage,
		OldPrice:    in.OldPrice,
		NewPrice:    *in.NewPrice,
		Rating:      *in.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.books.Insert(ctx, book); err != nil {
		return nil, apperror.NewInternal("An error occurred while creating the book", err)
	}
	return book, nil
}

// Update replaces only the fields present in upd.
func (s *BookService) Update(ctx context.Context, id string, upd models.BookUpdate) (*models.Book, error) {
	if upd.Empty() {
		return s.Get(ctx, id)
	}
	book, err := s.books.Update(ctx, id, upd, s.now().UTC())
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.NewNotFound("Book not found")
	}
	if err != nil {
		return nil, apperror.NewInternal("Failed to update book", err)
	}
	return book, nil
}

// Delete is idempotent: removing a missing book is not an error.
func (s *BookService) Delete(ctx context.Context, id string) error {
	if _, err := s.books.Delete(ctx, id); err != nil {
		return apperror.NewInternal("Failed to delete book", err)
	}
	return nil
}
