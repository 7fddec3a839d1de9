package models

import (
	"time"

	"freshcart/internal/apperr"

	"github.com/shopspring/decimal"
)

// MissingProductName is shown for cart lines whose product was deleted.
const MissingProductName = "Product no longer available"

// CartItem is one product line of a cart.
type CartItem struct {
	ProductID string `json:"product" bson:"product"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart is the pre-checkout basket of a single user.
type Cart struct {
	UserID    string     `json:"user" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Items     []CartItem `json:"items" bson:"items" gorm:"serializer:json;type:text"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// NewCart returns an empty cart for userID.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

func validQuantity(quantity int) error {
	if quantity <= 0 {
		return apperr.Validation("quantity must be a positive integer")
	}
	return nil
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges quantity into the line for productID, appending a new line
// when the product is not in the cart yet.
func (c *Cart) AddItem(productID string, quantity int) error {
	if productID == "" {
		return apperr.Validation("productId is required")
	}
	if err := validQuantity(quantity); err != nil {
		return err
	}
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity += quantity
		return nil
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if err := validQuantity(quantity); err != nil {
		return err
	}
	i := c.indexOf(productID)
	if i < 0 {
		return apperr.NotFound("product %s is not in the cart", productID)
	}
	c.Items[i].Quantity = quantity
	return nil
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Count returns the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// ComputeTotal sums quantity x unit price over the cart. Lines whose product
// has no known price contribute zero.
func (c *Cart) ComputeTotal(prices map[string]float64) float64 {
	total := decimal.Zero
	for _, item := range c.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.InexactFloat64()
}

// ProductSummary is the slice of a product rendered inside cart lines.
type ProductSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	CountInStock int     `json:"countInStock"`
}

// Summary returns the cart-facing view of p.
func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Image:        p.Image,
		CountInStock: p.CountInStock,
	}
}

// CartLine is a cart item joined with its product.
type CartLine struct {
	ProductID string          `json:"productId"`
	Product   *ProductSummary `json:"product"`
	Quantity  int             `json:"quantity"`
	Missing   bool            `json:"missing,omitempty"`
}

// CartView is the cart as returned to clients.
type CartView struct {
	User  string     `json:"user"`
	Items []CartLine `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

// NewCartView joins c with the products it references. Products absent from
// the map render as placeholder lines and do not count toward the total.
func NewCartView(c *Cart, products map[string]*Product) CartView {
	view := CartView{User: c.UserID, Items: make([]CartLine, 0, len(c.Items)), Count: c.Count()}
	prices := make(map[string]float64, len(products))
	for _, item := range c.Items {
		line := CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := products[item.ProductID]; ok && p != nil {
			line.Product = p.Summary()
			prices[item.ProductID] = p.Price
		} else {
			line.Missing = true
			line.Product = &ProductSummary{ID: item.ProductID, Name: MissingProductName}
		}
		view.Items = append(view.Items, line)
	}
	view.Total = c.ComputeTotal(prices)
	return view
}
