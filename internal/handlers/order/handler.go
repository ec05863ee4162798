package order

import (
	"errors"
	"log"
	"net/http"

	"trendora_back_end/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// handleServiceError traduit les erreurs du moteur en réponse HTTP. Les
// erreurs connues remontent leur message tel quel, le reste part en 500
// générique (jamais d'erreur driver brute vers le client).
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCard),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotCancellable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrStockUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIdentityUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service utilisateurs indisponible"})
	default:
		log.Printf("❌ Erreur interne: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne, réessayez plus tard"})
	}
}
