package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a catalog entry. OldPrice is nil when the book has no previous
// price and is encoded as null, never as zero.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Trending    bool               `bson:"trending" json:"trending"`
	CoverImage  string             `bson:"coverImage" json:"coverImage"`
	OldPrice    *float64           `bson:"oldPrice" json:"oldPrice"`
	NewPrice    float64            `bson:"newPrice" json:"newPrice"`
	Rating      float64            `bson:"rating" json:"rating"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type BookInput struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Trending    *bool    `json:"trending" validate:"required"`
	CoverImage  string   `json:"coverImage" validate:"required"`
	OldPrice    *float64 `json:"oldPrice" validate:"omitempty,gte=0"`
	NewPrice    *float64 `json:"newPrice" validate:"required,gte=0"`
	Rating      *float64 `json:"rating" validate:"required,gte=0"`
}

// BookUpdate carries a partial update; nil fields are left untouched.
type BookUpdate struct {
	Title       *string       `json:"title"`
	Author      *string       `json:"author"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Trending    *bool         `json:"trending"`
	CoverImage  *string       `json:"coverImage"`
	OldPrice    OptionalPrice `json:"oldPrice"`
	NewPrice    *float64      `json:"newPrice"`
	Rating      *float64      `json:"rating"`
}

// OptionalPrice tells an absent field apart from an explicit null.
type OptionalPrice struct {
	Set   bool
	Value *float64
}

func (p *OptionalPrice) UnmarshalJSON(b []byte) error {
	p.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		p.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (u BookUpdate) Empty() bool {
	return u.Title == nil && u.Author == nil && u.Description == nil && u.Category == nil &&
		u.Trending == nil && u.CoverImage == nil && !u.OldPrice.Set && u.NewPrice == nil && u.Rating == nil
}
