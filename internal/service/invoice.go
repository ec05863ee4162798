package service

import (
	"fmt"
	"log"
	"os"

	"trendora_back_end/internal/models"
	"trendora_back_end/internal/utils"
)

// Barème de facturation : TVA fixe, frais de port forfaitaires offerts
// au-delà du seuil.
const (
	TaxRate               = 0.18
	ShippingFlatFee       = 150.0
	FreeShippingThreshold = 10000.0
)

func computeSubTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func computeShippingFee(subTotal float64) float64 {
	if subTotal > FreeShippingThreshold {
		return 0
	}
	return ShippingFlatFee
}

// buildInvoice assemble le détail de facturation d'une commande fraîchement
// créée. Le QR de paiement est best-effort : son échec est journalisé et la
// facture part sans QR.
func buildInvoice(order *models.Order, user *models.UserInfo, cardNumber string, items []models.OrderItem) models.Invoice {
	subTotal := order.TotalPrice
	shippingFee := computeShippingFee(subTotal)

	invoice := models.Invoice{
		OrderID:     order.ID,
		UserID:      order.UserID,
		UserName:    user.UserName,
		Email:       user.Email,
		Address:     order.Address,
		Items:       items,
		SubTotal:    subTotal,
		TaxRate:     TaxRate,
		ShippingFee: shippingFee,
		FinalTotal:  subTotal + subTotal*TaxRate + shippingFee,
		MaskedCard:  maskCard(cardNumber),
		CardNetwork: cardNetwork(),
		CreatedAt:   order.CreatedAt,
	}

	iban := os.Getenv("COMPANY_IBAN")
	if iban == "" {
		iban = "BE12345678901234"
	}
	bic := os.Getenv("COMPANY_BIC")
	if bic == "" {
		bic = "KREDBEBB"
	}
	companyName := os.Getenv("COMPANY_NAME")
	if companyName == "" {
		companyName = "Trendora SRL"
	}
	ref := fmt.Sprintf("FACT-%s", order.ID)

	qr, err := utils.GenerateSepaQR(iban, bic, companyName, ref, invoice.FinalTotal)
	if err != nil {
		log.Printf("⚠️ Erreur génération QR facture %s: %v", order.ID, err)
	} else {
		invoice.PaymentQR = qr
	}

	return invoice
}
