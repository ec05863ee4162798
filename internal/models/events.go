package models

import "github.com/gocql/gocql"

// Noms des événements publiés vers le pipeline de notification
const (
	EventInvoiceCreated      = "invoice-created"
	EventOrderCancelled      = "order-cancelled"
	EventOrderStatusChanged  = "order-status-changed"
	EventRefundApproved      = "refund-approved"
	EventOrderRefundRejected = "order-refund-rejected"
)

type OrderCancelledEvent struct {
	OrderID gocql.UUID `json:"order_id"`
	UserID  string     `json:"user_id"`
	Reason  string     `json:"reason"`
}

type OrderStatusChangedEvent struct {
	OrderID gocql.UUID `json:"order_id"`
	UserID  string     `json:"user_id"`
	Status  string     `json:"status"`
}

// RefundApprovedEvent porte les articles et le total de la commande pour que
// le pipeline aval puisse créditer le client.
type RefundApprovedEvent struct {
	UserID     string      `json:"user_id"`
	OrderID    gocql.UUID  `json:"order_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
}

type OrderRefundRejectedEvent struct {
	OrderID gocql.UUID `json:"order_id"`
}
