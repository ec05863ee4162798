package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	RefundStatusPending  = "PENDING"
	RefundStatusApproved = "APPROVED"
	RefundStatusRejected = "REJECTED"
)

type Refund struct {
	ID         gocql.UUID `json:"id"`
	OrderID    gocql.UUID `json:"order_id"`
	UserID     string     `json:"user_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"` // PENDING, APPROVED, REJECTED
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RefundSummary joint une demande de remboursement à sa commande (vue admin)
type RefundSummary struct {
	ID         gocql.UUID `json:"id"`
	OrderID    gocql.UUID `json:"order_id"`
	UserID     string     `json:"user_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	OrderDate  time.Time  `json:"order_date"`
	ProductIDs []string   `json:"product_ids"`
}
