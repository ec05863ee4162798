package refund

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ApproveRefund approuve une demande de remboursement (admin). La commande
// associée passe en REJECTED.
func (h *Handler) ApproveRefund(c *gin.Context) {
	reviewerID := c.GetString("user_id")

	refundID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID remboursement invalide"})
		return
	}

	refund, err := h.service.ApproveRefund(c.Request.Context(), refundID, reviewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Demande de remboursement approuvée",
		"refund":  refund,
	})
}

// RejectRefund rejette une demande de remboursement (admin). La commande
// associée passe elle aussi en REJECTED : la demande instruite clôt la
// commande dans les deux cas.
func (h *Handler) RejectRefund(c *gin.Context) {
	reviewerID := c.GetString("user_id")

	refundID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID remboursement invalide"})
		return
	}

	refund, err := h.service.RejectRefund(c.Request.Context(), refundID, reviewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Demande de remboursement rejetée",
		"refund":  refund,
	})
}

// ChangeRefundStatus force le statut d'une demande (outil admin)
func (h *Handler) ChangeRefundStatus(c *gin.Context) {
	refundID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID remboursement invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	refund, err := h.service.ChangeRefundStatus(c.Request.Context(), refundID, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"refund":  refund,
	})
}

// GetAllRefunds récupère toutes les demandes jointes à leur commande (admin)
func (h *Handler) GetAllRefunds(c *gin.Context) {
	refunds, err := h.service.GetAllRefunds(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refunds": refunds,
		"count":   len(refunds),
	})
}
