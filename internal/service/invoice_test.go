package service

import (
	"testing"
	"time"

	"trendora_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
)

func TestComputeSubTotal(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "1", Quantity: 2, Price: 50},
		{ProductID: "2", Quantity: 1, Price: 30},
	}
	assert.InDelta(t, 130.0, computeSubTotal(items), 1e-9)
	assert.Zero(t, computeSubTotal(nil))
}

func TestComputeShippingFee(t *testing.T) {
	assert.Equal(t, ShippingFlatFee, computeShippingFee(130))
	assert.Equal(t, ShippingFlatFee, computeShippingFee(10000)) // le seuil est strict
	assert.Equal(t, 0.0, computeShippingFee(10000.01))
	assert.Equal(t, 0.0, computeShippingFee(25000))
}

func TestBuildInvoice(t *testing.T) {
	order := &models.Order{
		ID:         gocql.TimeUUID(),
		UserID:     "u1",
		Address:    "12 rue des Tests, Bruxelles",
		TotalPrice: 130,
		Status:     models.OrderStatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}
	user := &models.UserInfo{Email: "client@test.tld", UserName: "Client Test"}
	items := []models.OrderItem{
		{ProductID: "1", Quantity: 2, Price: 50, ProductName: "Pull"},
		{ProductID: "2", Quantity: 1, Price: 30, ProductName: "Bonnet"},
	}

	invoice := buildInvoice(order, user, "1111222233334444", items)

	assert.Equal(t, order.ID, invoice.OrderID)
	assert.Equal(t, "u1", invoice.UserID)
	assert.Equal(t, "Client Test", invoice.UserName)
	assert.Equal(t, "client@test.tld", invoice.Email)
	assert.InDelta(t, 130.0, invoice.SubTotal, 1e-9)
	assert.InDelta(t, 0.18, invoice.TaxRate, 1e-9)
	assert.InDelta(t, 150.0, invoice.ShippingFee, 1e-9)
	assert.InDelta(t, 303.4, invoice.FinalTotal, 1e-9) // 130 + 23.4 + 150
	assert.Equal(t, "**** **** **** 4444", invoice.MaskedCard)
	assert.Contains(t, []string{"VISA", "MasterCard"}, invoice.CardNetwork)
	assert.Len(t, invoice.Items, 2)
	// Le QR de paiement est best-effort mais doit sortir en environnement sain
	assert.NotEmpty(t, invoice.PaymentQR)
}

func TestBuildInvoiceFreeShipping(t *testing.T) {
	order := &models.Order{
		ID:         gocql.TimeUUID(),
		UserID:     "u1",
		TotalPrice: 12000,
		CreatedAt:  time.Now().UTC(),
	}
	user := &models.UserInfo{Email: "client@test.tld", UserName: "Client Test"}

	invoice := buildInvoice(order, user, "1111222233334444", nil)

	assert.Equal(t, 0.0, invoice.ShippingFee)
	assert.InDelta(t, 12000*1.18, invoice.FinalTotal, 1e-9)
}
