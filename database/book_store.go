package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore/models"
)

type BookStore struct {
	coll *mongo.Collection
}

func NewBookStore(db *mongo.Database) *BookStore {
	return &BookStore{coll: db.Collection(BooksCollection)}
}

func (s *BookStore) FindAll(ctx context.Context) ([]models.Book, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookStore) FindByID(ctx context.Context, id string) (*models.Book, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var book models.Book
	err = s.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *BookStore) Insert(ctx context.Context, book *models.Book) error {
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, book)
	return err
}

// Update applies the non-nil fields of upd and returns the stored document
// after the update.
func (s *BookStore) Update(ctx context.Context, id string, upd models.BookUpdate, now time.Time) (*models.Book, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": now}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Trending != nil {
		set["trending"] = *upd.Trending
	}
	if upd.CoverImage != nil {
		set["coverImage"] = *upd.CoverImage
	}
	if upd.OldPrice.Set {
		// nil pointer is stored as null
		set["oldPrice"] = upd.OldPrice.Value
	}
	if upd.NewPrice != nil {
		set["newPrice"] = *upd.NewPrice
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Book
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete reports whether a document was removed. Orders that reference the
// book are left as they are.
func (s *BookStore) Delete(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *BookStore) Count(ctx context.Context, trendingOnly bool) (int64, error) {
	filter := bson.M{}
	if trendingOnly {
		filter["trending"] = true
	}
	return s.coll.CountDocuments(ctx, filter)
}
