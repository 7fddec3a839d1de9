package app_test

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"freshcart/internal/app"
	"freshcart/internal/config"
	"freshcart/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestNew_MountsRoutesWithCORS(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:      "secret",
		TokenTTL:       time.Hour,
		CORSOrigins:    "https://shop.example.com",
		BodyLimitMB:    1,
		RequestTimeout: time.Second,
	}
	fiberApp := app.New(cfg, app.NewServices(cfg, repositories.NewMemoryStore(), nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://shop.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNew_ProtectedRoutesRequireToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", TokenTTL: time.Hour, CORSOrigins: "*", BodyLimitMB: 1}
	fiberApp := app.New(cfg, app.NewServices(cfg, repositories.NewMemoryStore(), nil, nil))

	for _, path := range []string{"/api/cart", "/api/orders/myorders", "/api/users/me", "/api/products/admin"} {
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
