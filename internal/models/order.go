package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts du cycle de vie d'une commande
const (
	OrderStatusProcessing = "PROCESSING"
	OrderStatusApproved   = "APPROVED"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusOnWay      = "ONWAY"
	OrderStatusDelivering = "DELIVERING"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusRejected   = "REJECTED"
)

type Order struct {
	ID          gocql.UUID  `json:"id"`
	UserID      string      `json:"user_id"`
	Address     string      `json:"address"`
	TotalPrice  float64     `json:"total_price"` // figé à la création, jamais recalculé
	Items       []OrderItem `json:"items"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	DeliveredAt *time.Time  `json:"delivered_at,omitempty"`
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"` // prix unitaire au moment de la commande
	ProductName string  `json:"product_name,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// OrderSummary est la projection renvoyée par l'historique des commandes
type OrderSummary struct {
	ID            gocql.UUID  `json:"id"`
	UserID        string      `json:"user_id"`
	Status        string      `json:"status"`
	TotalPrice    float64     `json:"total_price"`
	TotalQuantity int         `json:"total_quantity"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	DeliveredAt   *time.Time  `json:"delivered_at,omitempty"`
}
