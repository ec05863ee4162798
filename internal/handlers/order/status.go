package order

import (
	"net/http"
	"time"

	"trendora_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// UpdateOrderStatus permet à un admin de faire avancer le statut d'une
// commande. Les transitions sont validées par le moteur, un statut
// arbitraire n'est plus accepté.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// CancelOrder annule une commande encore en PROCESSING ou APPROVED
func (h *Handler) CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Le motif est optionnel
	_ = c.ShouldBindJSON(&req)

	if err := h.service.CancelOrder(c.Request.Context(), orderID, userID, req.Reason); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": orderID,
		"message":  "Commande annulée",
	})
}

// GetInvoiceURL renvoie une URL signée vers la facture archivée (admin)
func (h *Handler) GetInvoiceURL(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	// Vérifier que la commande existe avant de signer quoi que ce soit
	if _, err := h.service.GetOrderByID(c.Request.Context(), orderID); err != nil {
		handleServiceError(c, err)
		return
	}

	url, err := services.GenerateInvoiceURL(c.Request.Context(), orderID.String(), 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facture archivée introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": 900})
}
