package storefront_test

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"freshcart/internal/app"
	"freshcart/internal/config"
	"freshcart/internal/models"
	"freshcart/internal/repositories"
	"freshcart/pkg/storefront"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixel = "data:image/png;base64,iVBORw0KGgo="

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// startServer runs the API on a random local port and returns a client for it
// together with the ID of a product in stock.
func startServer(t *testing.T) (*storefront.Client, string) {
	t.Helper()
	ctx := context.Background()

	store := repositories.NewMemoryStore()
	cfg := &config.Config{JWTSecret: "secret", TokenTTL: time.Hour, CORSOrigins: "*", BodyLimitMB: 1}
	svc := app.NewServices(cfg, store, nil, nil)

	apples := &models.Product{Name: "Fresh Apples", Price: 12, CountInStock: 10, Image: pixel}
	require.NoError(t, svc.Products.CreateProduct(ctx, apples))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	fiberApp := app.New(cfg, svc)
	go func() { _ = fiberApp.Listener(ln) }()
	t.Cleanup(func() { _ = fiberApp.Shutdown() })

	return storefront.New("http://" + ln.Addr().String() + "/api/"), apples.ID
}

func TestClient_WithTokenReturnsCopy(t *testing.T) {
	anon := storefront.New("http://localhost:5000/api")
	authed := anon.WithToken("abc")

	assert.False(t, anon.Authenticated())
	assert.Equal(t, "", anon.Token())
	assert.True(t, authed.Authenticated())
	assert.Equal(t, "abc", authed.Token())
}

func TestClient_EndToEnd(t *testing.T) {
	client, productID := startServer(t)

	page, err := client.Products("apple", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)

	_, err = client.Cart()
	assert.True(t, storefront.IsStatus(err, http.StatusUnauthorized))

	res, err := client.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	alice := client.WithToken(res.Token)

	_, err = client.Register("Alice", "alice@example.com", "password123")
	assert.True(t, storefront.IsStatus(err, http.StatusConflict))

	_, err = client.Register("Bob", "bad", "1")
	var apiErr *storefront.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Fields, "Email")

	me, err := alice.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Name)

	_, err = alice.AddToCart(productID, 5)
	require.NoError(t, err)

	order, err := alice.CreateOrder(storefront.OrderInput{
		ShippingAddress: models.ShippingAddress{Address: "1 Market St", City: "Jakarta", PostalCode: "10110", Country: "ID"},
		PaymentMethod:   "PayPal",
	})
	require.NoError(t, err)
	assert.InDelta(t, 60.0, order.ItemsPrice, 1e-9)
	assert.InDelta(t, 0.0, order.ShippingPrice, 1e-9)
	assert.InDelta(t, 63.0, order.TotalPrice, 1e-9)

	paid, err := alice.PayOrder(order.ID, models.PaymentResult{ID: "PAY-1", Status: "COMPLETED", EmailAddress: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	mine, err := alice.MyOrders()
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, alice.Review(productID, 5, "Great"))
	product, err := alice.Product(productID)
	require.NoError(t, err)
	assert.Equal(t, 1, product.NumReviews)
}

func TestNewCartStore_SelectsBacking(t *testing.T) {
	anon := storefront.New("http://localhost:5000/api")

	_, isLocal := storefront.NewCartStore(anon).(*storefront.LocalCart)
	assert.True(t, isLocal)
	_, isLocal = storefront.NewCartStore(nil).(*storefront.LocalCart)
	assert.True(t, isLocal)
	_, isRemote := storefront.NewCartStore(anon.WithToken("t")).(*storefront.RemoteCart)
	assert.True(t, isRemote)
}

func TestLocalCart(t *testing.T) {
	ctx := context.Background()
	cart := storefront.NewLocalCart()

	require.NoError(t, cart.Add(ctx, "apples", 2))
	require.NoError(t, cart.Add(ctx, "apples", 1))
	require.NoError(t, cart.Add(ctx, "milk", 1))
	assert.Error(t, cart.Add(ctx, "milk", 0))
	require.NoError(t, cart.SetQuantity(ctx, "milk", 4))
	require.NoError(t, cart.Remove(ctx, "nothing"))

	items, err := cart.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{ProductID: "apples", Quantity: 3}, {ProductID: "milk", Quantity: 4}}, items)

	require.NoError(t, cart.Clear(ctx))
	items, err = cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMergeCart_MovesGuestCartToServer(t *testing.T) {
	ctx := context.Background()
	client, productID := startServer(t)

	res, err := client.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	guest := storefront.NewLocalCart()
	require.NoError(t, guest.Add(ctx, productID, 2))

	remote := storefront.NewCartStore(client.WithToken(res.Token))
	require.NoError(t, remote.Add(ctx, productID, 1))
	require.NoError(t, storefront.MergeCart(ctx, remote, guest))

	items, err := remote.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{ProductID: productID, Quantity: 3}}, items)

	left, err := guest.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}
