package services

import (
	"context"
	"encoding/base64"
	"strings"

	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// UploadService turns uploaded image files into catalog products.
type UploadService struct {
	products *ProductService
}

// NewUploadService creates a new UploadService.
func NewUploadService(products *ProductService) *UploadService {
	return &UploadService{products: products}
}

// EncodeImage sniffs data and returns it as a data URI. Anything that is not
// an image is rejected.
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.Validation("no image uploaded")
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperr.Validation("invalid image format: %s", mtype.String())
	}
	mime := mtype.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// CreateFromUpload stores product with the uploaded image embedded.
func (s *UploadService) CreateFromUpload(ctx context.Context, product *models.Product, image []byte) error {
	encoded, err := EncodeImage(image)
	if err != nil {
		return err
	}
	product.Image = encoded
	return s.products.CreateProduct(ctx, product)
}
