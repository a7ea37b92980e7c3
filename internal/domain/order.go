package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// validTransitions maps each status to the states it may move into.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {},
	OrderStatusCancelled: {},
}

// CanTransitionTo reports whether an order may move from s to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the status is one of the known states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a purchased line within an order. Price is the unit price
// at the time of purchase, in whole currency units.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// Subtotal returns the line total for the item.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Payer holds the customer contact details captured at checkout.
type Payer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is a customer purchase, persisted from checkout onwards.
type Order struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Payer     Payer       `json:"payer"`
	PaymentID string      `json:"payment_id,omitempty"`
}

// ComputeTotal sums the line subtotals.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}
