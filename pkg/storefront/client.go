// Package storefront is a typed client for the freshcart HTTP API.
package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freshcart/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client calls the API. A Client is immutable: WithToken returns a new value,
// so one Client can be shared while each session carries its own credentials.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

// New returns an anonymous client for the API rooted at baseURL, for example
// "http://localhost:5000/api".
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: defaultTimeout}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// WithTimeout returns a copy of c with a different per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cp := *c
	cp.timeout = d
	return &cp
}

// Token returns the bearer token, or "" for an anonymous client.
func (c *Client) Token() string { return c.token }

// Authenticated reports whether c carries a token.
func (c *Client) Authenticated() bool { return c.token != "" }

func (c *Client) do(method, path string, body, out interface{}) error {
	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if c.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		agent.JSON(body)
	}
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("storefront: invalid request %s %s: %w", method, path, err)
	}

	status, data, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("storefront: %s %s: %w", method, path, errors.Join(errs...))
	}
	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status}
		var payload struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Message
			apiErr.Fields = payload.Errors
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("storefront: decoding %s %s: %w", method, path, err)
	}
	return nil
}

// AuthResult is the response of Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account. Use WithToken with the returned token for
// authenticated calls.
func (c *Client) Register(name, email, password string) (*AuthResult, error) {
	var res AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(fiber.MethodPost, "/users/register", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(email, password string) (*AuthResult, error) {
	var res AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(fiber.MethodPost, "/users/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Profile() (*models.User, error) {
	var user models.User
	if err := c.do(fiber.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Products returns one catalog page. An empty search lists everything.
func (c *Client) Products(search string, page int) (*models.ProductPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var res models.ProductPage
	if err := c.do(fiber.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Product(id string) (*models.Product, error) {
	var p models.Product
	if err := c.do(fiber.MethodGet, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Review posts the caller's review of a product.
func (c *Client) Review(productID string, rating int, comment string) error {
	body := map[string]interface{}{"rating": rating, "comment": comment}
	return c.do(fiber.MethodPost, "/products/"+url.PathEscape(productID)+"/reviews", body, nil)
}

// Cart returns the caller's server cart.
func (c *Client) Cart() (*models.CartView, error) {
	var cart models.CartView
	if err := c.do(fiber.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(productID string, quantity int) (*models.CartView, error) {
	var cart models.CartView
	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	if err := c.do(fiber.MethodPost, "/cart", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateCartItem(productID string, quantity int) (*models.CartView, error) {
	var cart models.CartView
	body := map[string]int{"quantity": quantity}
	if err := c.do(fiber.MethodPut, "/cart/"+url.PathEscape(productID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveFromCart(productID string) (*models.CartView, error) {
	var cart models.CartView
	if err := c.do(fiber.MethodDelete, "/cart/"+url.PathEscape(productID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ClearCart() error {
	return c.do(fiber.MethodDelete, "/cart", nil, nil)
}

// OrderInput is the checkout payload. Leave Items empty to order the server cart.
type OrderInput struct {
	Items           []models.OrderItem     `json:"orderItems,omitempty"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      *float64               `json:"itemsPrice,omitempty"`
	ShippingPrice   *float64               `json:"shippingPrice,omitempty"`
	TaxPrice        *float64               `json:"taxPrice,omitempty"`
	TotalPrice      *float64               `json:"totalPrice,omitempty"`
}

func (c *Client) CreateOrder(in OrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.do(fiber.MethodPost, "/orders", in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Order(id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(fiber.MethodGet, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) MyOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(fiber.MethodGet, "/orders/myorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PayOrder forwards a payment provider confirmation for the caller's order.
func (c *Client) PayOrder(id string, result models.PaymentResult) (*models.Order, error) {
	body := map[string]interface{}{
		"id":          result.ID,
		"status":      result.Status,
		"update_time": result.UpdateTime,
		"payer":       map[string]string{"email_address": result.EmailAddress},
	}
	var order models.Order
	if err := c.do(fiber.MethodPut, "/orders/"+url.PathEscape(id)+"/pay", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
