package repositories

import (
	"sort"
	"strings"
	"time"

	"freshcart/internal/models"

	"github.com/google/uuid"
)

// The in-memory repositories hand out copies so callers can never mutate
// stored state without going through Update/Save.

func newID() string {
	return uuid.New().String()
}

func cloneProduct(p models.Product) models.Product {
	if p.Reviews != nil {
		p.Reviews = append([]models.Review(nil), p.Reviews...)
	}
	return p
}

func cloneCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return c
}

func cloneOrder(o models.Order) models.Order {
	o.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		o.PaymentResult = &pr
	}
	o.User = nil
	return o
}

func matchesSearch(p *models.Product, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func newerFirst(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}

func sortProductsNewest(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return newerFirst(products[i].CreatedAt, products[j].CreatedAt, products[i].ID, products[j].ID)
	})
}

func sortOrdersNewest(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return newerFirst(orders[i].CreatedAt, orders[j].CreatedAt, orders[i].ID, orders[j].ID)
	})
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
