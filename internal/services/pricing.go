package services

import (
	"freshcart/internal/apperr"
	"freshcart/internal/models"

	"github.com/shopspring/decimal"
)

var (
	freeShippingOver = decimal.NewFromInt(50)
	shippingFee      = decimal.NewFromInt(10)
	taxRate          = decimal.NewFromFloat(0.05)
	priceTolerance   = decimal.NewFromFloat(0.01)
)

// PriceBreakdown is the money summary of an order.
type PriceBreakdown struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// CalculatePrices sums the order lines. Shipping is free above 50, tax is 5%
// of the items price. Every amount is rounded to cents.
func CalculatePrices(items []models.OrderItem) PriceBreakdown {
	itemsPrice := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemsPrice = itemsPrice.Add(line)
	}
	itemsPrice = itemsPrice.Round(2)

	shipping := shippingFee
	if itemsPrice.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}
	tax := itemsPrice.Mul(taxRate).Round(2)
	total := itemsPrice.Add(shipping).Add(tax)

	return PriceBreakdown{
		ItemsPrice:    itemsPrice.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		TotalPrice:    total.InexactFloat64(),
	}
}

// ClaimedPrices holds the totals a client computed; nil fields were not sent.
type ClaimedPrices struct {
	ItemsPrice    *float64
	ShippingPrice *float64
	TaxPrice      *float64
	TotalPrice    *float64
}

// Check rejects claimed values that differ from b by more than one cent.
func (b PriceBreakdown) Check(claimed ClaimedPrices) error {
	fields := []struct {
		name    string
		want    float64
		claimed *float64
	}{
		{"itemsPrice", b.ItemsPrice, claimed.ItemsPrice},
		{"shippingPrice", b.ShippingPrice, claimed.ShippingPrice},
		{"taxPrice", b.TaxPrice, claimed.TaxPrice},
		{"totalPrice", b.TotalPrice, claimed.TotalPrice},
	}
	for _, f := range fields {
		if f.claimed == nil {
			continue
		}
		diff := decimal.NewFromFloat(*f.claimed).Sub(decimal.NewFromFloat(f.want)).Abs()
		if diff.GreaterThan(priceTolerance) {
			return apperr.Validation("%s %.2f does not match the computed %.2f", f.name, *f.claimed, f.want)
		}
	}
	return nil
}
