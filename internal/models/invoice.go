package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Invoice est le détail de facturation calculé à la création d'une commande.
// Il est renvoyé au client, archivé dans MinIO et publié vers le pipeline
// de notification.
type Invoice struct {
	OrderID     gocql.UUID  `json:"order_id"`
	UserID      string      `json:"user_id"`
	UserName    string      `json:"user_name"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	Items       []OrderItem `json:"items"`
	SubTotal    float64     `json:"sub_total"`
	TaxRate     float64     `json:"tax_rate"`
	ShippingFee float64     `json:"shipping_fee"`
	FinalTotal  float64     `json:"final_total"`
	MaskedCard  string      `json:"masked_card"`  // **** **** **** NNNN
	CardNetwork string      `json:"card_network"` // placeholder, pas une vraie détection BIN
	PaymentQR   string      `json:"payment_qr,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
