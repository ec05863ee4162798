package order

import (
	"net/http"

	"trendora_back_end/internal/models"
	"trendora_back_end/internal/service"

	"github.com/gin-gonic/gin"
)

type createOrderItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

// CreateOrder crée une commande pour l'utilisateur connecté
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		Address         string            `json:"address" binding:"required"`
		CardInformation string            `json:"card_information" binding:"required"`
		Items           []createOrderItem `json:"items" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     item.Price,
		})
	}

	order, invoice, err := h.service.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:          userID,
		Address:         req.Address,
		CardInformation: req.CardInformation,
		Items:           items,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Commande créée",
		"order_id": order.ID,
		"invoice":  invoice,
	})
}
