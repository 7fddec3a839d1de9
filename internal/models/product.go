package models

import (
	"strings"
	"time"

	"freshcart/internal/apperr"
)

// ImageMarker prefixes every accepted embedded image payload.
const ImageMarker = "data:image"

// Review is a single user's rating of a product. It lives inside its Product.
type Review struct {
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Product represents a catalog entry in the store.
type Product struct {
	ID           string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" bson:"name" gorm:"type:varchar(200);not null;index"`
	Price        float64   `json:"price" bson:"price"`
	Category     string    `json:"category" bson:"category" gorm:"type:varchar(100);index"`
	Brand        string    `json:"brand" bson:"brand" gorm:"type:varchar(100)"`
	Description  string    `json:"description" bson:"description" gorm:"type:text"`
	CountInStock int       `json:"countInStock" bson:"countInStock"`
	Image        string    `json:"image" bson:"image" gorm:"type:text"`
	Rating       float64   `json:"rating" bson:"rating"`
	NumReviews   int       `json:"numReviews" bson:"numReviews"`
	Reviews      []Review  `json:"reviews" bson:"reviews" gorm:"serializer:json;type:text"`
	IsFeatured   bool      `json:"isFeatured" bson:"isFeatured"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Count    int64     `json:"count"`
}

// ValidateImage checks that image carries an embedded image encoding.
func ValidateImage(image string) error {
	if !strings.HasPrefix(image, ImageMarker) {
		return apperr.Validation("invalid image format")
	}
	return nil
}

// Validate enforces the catalog invariants on a complete product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("product name is required")
	}
	if p.Price < 0 {
		return apperr.Validation("price must not be negative")
	}
	if p.CountInStock < 0 {
		return apperr.Validation("countInStock must not be negative")
	}
	return ValidateImage(p.Image)
}

// HasReviewBy reports whether userID already reviewed p.
func (p *Product) HasReviewBy(userID string) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview appends r and recomputes the derived rating fields.
func (p *Product) AddReview(r Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}
	if p.HasReviewBy(r.UserID) {
		return apperr.Duplicate("product already reviewed")
	}
	p.Reviews = append(p.Reviews, r)
	p.recomputeRating()
	return nil
}

func (p *Product) recomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}

// ProductPatch is a partial product update. A nil field is absent; a non-nil
// field is applied even when it holds a zero value.
type ProductPatch struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	Description  *string  `json:"description,omitempty"`
	CountInStock *int     `json:"countInStock,omitempty"`
	Image        *string  `json:"image,omitempty"`
	IsFeatured   *bool    `json:"isFeatured,omitempty"`
}

// Validate checks the present fields only.
func (pp ProductPatch) Validate() error {
	if pp.Name != nil && strings.TrimSpace(*pp.Name) == "" {
		return apperr.Validation("product name must not be empty")
	}
	if pp.Price != nil && *pp.Price < 0 {
		return apperr.Validation("price must not be negative")
	}
	if pp.CountInStock != nil && *pp.CountInStock < 0 {
		return apperr.Validation("countInStock must not be negative")
	}
	if pp.Image != nil {
		return ValidateImage(*pp.Image)
	}
	return nil
}

// Apply copies the present fields onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Brand != nil {
		p.Brand = *pp.Brand
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.CountInStock != nil {
		p.CountInStock = *pp.CountInStock
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.IsFeatured != nil {
		p.IsFeatured = *pp.IsFeatured
	}
}
