package models

import "time"

// OrderItem is a line of an order, snapshotted from the catalog at checkout.
type OrderItem struct {
	ProductID string  `json:"product" bson:"product" validate:"required"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image" bson:"image"`
	Price     float64 `json:"price" bson:"price"` // Price at the time of order
	Quantity  int     `json:"quantity" bson:"quantity" validate:"required,gte=1"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Address    string `json:"address" bson:"address" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
}

// PaymentResult is the confirmation payload reported by the payment provider.
type PaymentResult struct {
	ID           string `json:"id" bson:"id"`
	Status       string `json:"status" bson:"status"`
	UpdateTime   string `json:"update_time" bson:"updateTime"`
	EmailAddress string `json:"email_address" bson:"emailAddress"`
}

// Order represents a completed checkout.
type Order struct {
	ID              string          `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" bson:"user" gorm:"type:varchar(36);index;not null"`
	User            *UserRef        `json:"user,omitempty" bson:"-" gorm:"-"`
	OrderItems      []OrderItem     `json:"orderItems" bson:"orderItems" gorm:"serializer:json;type:text"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress" gorm:"serializer:json;type:text"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod" gorm:"type:varchar(100)"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" bson:"paymentResult,omitempty" gorm:"serializer:json;type:text"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid" gorm:"index"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}

// MarkPaid records a payment. Calling it again re-stamps PaidAt.
func (o *Order) MarkPaid(result PaymentResult, now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	o.UpdatedAt = now
}

// MarkDelivered records delivery. Calling it again re-stamps DeliveredAt.
func (o *Order) MarkDelivered(now time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.UpdatedAt = now
}

// MonthlySales is the paid total of one calendar month.
type MonthlySales struct {
	Month string  `json:"month"`
	Year  int     `json:"-"`
	Index int     `json:"-"`
	Total float64 `json:"total"`
}

// DashboardSummary is the admin overview of the store.
type DashboardSummary struct {
	TotalSales    float64        `json:"totalSales"`
	TotalOrders   int64          `json:"totalOrders"`
	TotalProducts int64          `json:"totalProducts"`
	TotalUsers    int64          `json:"totalUsers"`
	RecentOrders  []Order        `json:"recentOrders"`
	SalesByMonth  []MonthlySales `json:"salesByMonth"`
}
