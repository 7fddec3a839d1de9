package services_test

import (
	"context"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"freshcart/internal/models"
	"freshcart/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(_ context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.User), args.Error(1)
}

func (m *MockUserRepository) List(_ context.Context) ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(_ context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(_ context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(_ context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) HasAdmin(_ context.Context) (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(_ context.Context, q repositories.ProductQuery) ([]models.Product, int64, error) {
	args := m.Called(q)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListAll(_ context.Context) ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Top(_ context.Context, limit int) ([]models.Product, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Featured(_ context.Context, limit int) ([]models.Product, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Categories(_ context.Context) ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(_ context.Context, ids []string) (map[string]*models.Product, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(_ context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(_ context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Get(_ context.Context, userID string) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(_ context.Context, cart *models.Cart) error {
	args := m.Called(cart)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(_ context.Context, userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(_ context.Context, order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(_ context.Context, order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(_ context.Context, limit int) ([]models.Order, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPaidSince(_ context.Context, since time.Time) ([]models.Order, error) {
	args := m.Called(since)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(_ context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher records published order events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(event models.OrderEvent) error {
	args := m.Called(event.Type, event.OrderID)
	return args.Error(0)
}
