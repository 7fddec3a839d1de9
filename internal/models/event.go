package models

import "time"

// Order lifecycle event types, also used as routing keys.
const (
	OrderCreated   = "order.created"
	OrderPaid      = "order.paid"
	OrderDelivered = "order.delivered"
)

// OrderEvent is published whenever an order changes state.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	TotalPrice  float64   `json:"totalPrice"`
	IsPaid      bool      `json:"isPaid"`
	IsDelivered bool      `json:"isDelivered"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NewOrderEvent builds an event of the given type from o.
func NewOrderEvent(eventType string, o *Order, now time.Time) OrderEvent {
	return OrderEvent{
		Type:        eventType,
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalPrice:  o.TotalPrice,
		IsPaid:      o.IsPaid,
		IsDelivered: o.IsDelivered,
		OccurredAt:  now,
	}
}
