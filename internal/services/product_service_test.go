package services_test

import (
	"context"
	"testing"
	"time"

	"freshcart/internal/apperr"
	"freshcart/internal/cache"
	"freshcart/internal/models"
	"freshcart/internal/repositories"
	"freshcart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pixel = "data:image/png;base64,iVBORw0KGgo="

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Product{{ID: "1", Name: "Apples"}, {ID: "2", Name: "Apple Juice"}}
	mockRepo.On("List", repositories.ProductQuery{Search: "apple", Page: 2, PageSize: repositories.DefaultPageSize}).
		Return(expected, int64(14), nil).Once()

	page, err := service.ListProducts(ctx, " apple ", 2)
	require.NoError(t, err)
	assert.Equal(t, expected, page.Products)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages)
	assert.EqualValues(t, 14, page.Count)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Listings(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Top", services.TopProductsLimit).Return([]models.Product{{ID: "1"}}, nil).Once()
	mockRepo.On("Featured", services.FeaturedProductsLimit).Return([]models.Product{}, nil).Once()
	mockRepo.On("Categories").Return([]string{"Dairy", "Fruit"}, nil).Once()

	top, err := service.TopProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	featured, err := service.FeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, featured)

	categories, err := service.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dairy", "Fruit"}, categories)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	service := services.NewProductService(mockRepo, c)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10.0, CountInStock: 100}

	// The second read is served from the cache.
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	cached, err := service.GetProductByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Product A", cached.Name)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, apperr.NotFound("product with ID 99 not found")).Once()
	_, err = service.GetProductByID(ctx, "99")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Name: "Bread", Price: 2.5, Image: pixel, Rating: 5, NumReviews: 3}
	mockRepo.On("Create", newProduct).Return(nil).Once()

	require.NoError(t, service.CreateProduct(ctx, newProduct))
	assert.Zero(t, newProduct.Rating)
	assert.Zero(t, newProduct.NumReviews)
	mockRepo.AssertExpectations(t)

	// Invalid image payloads never reach the repository.
	err := service.CreateProduct(ctx, &models.Product{Name: "Bread", Image: "http://example.com/bread.png"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = service.CreateProduct(ctx, &models.Product{Name: "Bread", Price: -1, Image: pixel})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	mockRepo.AssertNotCalled(t, "Create", mock.MatchedBy(func(p *models.Product) bool { return p.Price < 0 }))
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	service := services.NewProductService(mockRepo, c)

	stored := &models.Product{ID: "1", Name: "Milk", Price: 1.5, CountInStock: 10, Brand: "Farm", Image: pixel, IsFeatured: true}
	c.Set(ctx, stored)

	zero := 0
	off := false
	empty := ""
	mockRepo.On("GetByID", "1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	updated, err := service.UpdateProduct(ctx, "1", models.ProductPatch{CountInStock: &zero, IsFeatured: &off, Brand: &empty})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CountInStock)
	assert.False(t, updated.IsFeatured)
	assert.Empty(t, updated.Brand)
	assert.Equal(t, "Milk", updated.Name, "absent fields keep their value")

	_, ok := c.Get(ctx, "1")
	assert.False(t, ok, "update invalidates the cached product")

	negative := -2.0
	_, err = service.UpdateProduct(ctx, "1", models.ProductPatch{Price: &negative})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Delete", "1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, "1"))

	mockRepo.On("Delete", "99").Return(apperr.NotFound("product with ID 99 not found for deletion")).Once()
	err := service.DeleteProduct(ctx, "99")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateReview(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	product := &models.Product{ID: "1", Name: "Milk", Image: pixel, Reviews: []models.Review{{UserID: "u1", Name: "Alice", Rating: 5}}, Rating: 5, NumReviews: 1}
	bob := &models.User{ID: "u2", Name: "Bob"}

	mockRepo.On("GetByID", "1").Return(product, nil).Once()
	mockRepo.On("Update", product).Return(nil).Once()
	require.NoError(t, service.CreateReview(ctx, "1", bob, 2, "too sour"))
	assert.Equal(t, 2, product.NumReviews)
	assert.Equal(t, 3.5, product.Rating)
	assert.Equal(t, "Bob", product.Reviews[1].Name)

	// A second review by the same user is rejected and nothing is written.
	mockRepo.On("GetByID", "1").Return(product, nil).Once()
	err := service.CreateReview(ctx, "1", bob, 4, "changed my mind")
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))
	assert.Len(t, product.Reviews, 2)

	mockRepo.On("GetByID", "1").Return(product, nil).Once()
	err = service.CreateReview(ctx, "1", &models.User{ID: "u3"}, 6, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	mockRepo.AssertExpectations(t)
}
