package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"trendora_back_end/internal/models"
)

// IdentityClient résout un user_id en nom/email auprès du service
// utilisateurs. Contrairement à la résolution produits, un échec ici est
// bloquant pour la création de commande.
type IdentityClient struct {
	baseURL string
	client  *http.Client
}

func NewIdentityClient() *IdentityClient {
	baseURL := os.Getenv("USER_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8082"
	}
	return &IdentityClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *IdentityClient) GetUserByID(ctx context.Context, userID string) (*models.UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/internal/users/"+userID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service utilisateurs: statut %d", resp.StatusCode)
	}

	var user models.UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
