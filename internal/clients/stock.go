package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// StockClient consomme le contrat stock du service produits : vérification
// de disponibilité avant création de commande, décrément après. Chaque appel
// est borné par un timeout.
type StockClient struct {
	baseURL string
	client  *http.Client
}

func NewStockClient() *StockClient {
	baseURL := os.Getenv("PRODUCT_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8081"
	}
	return &StockClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type stockCheckResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// CheckStock demande au service produits si la quantité est disponible pour
// ce produit/taille. Le message est renvoyé tel quel à l'appelant en cas
// d'indisponibilité.
func (c *StockClient) CheckStock(ctx context.Context, productID, size string, quantity int) (bool, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := url.Values{}
	q.Set("product_id", productID)
	q.Set("size", size)
	q.Set("quantity", strconv.Itoa(quantity))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/internal/stock/check?"+q.Encode(), nil)
	if err != nil {
		return false, "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("service produits: statut %d", resp.StatusCode)
	}

	var check stockCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&check); err != nil {
		return false, "", err
	}
	return check.OK, check.Message, nil
}

// DecrementStock décrémente le stock après création de commande
func (c *StockClient) DecrementStock(ctx context.Context, productID, size string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	body, err := json.Marshal(map[string]interface{}{
		"product_id": productID,
		"size":       size,
		"quantity":   quantity,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/internal/stock/decrement", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service produits: statut %d", resp.StatusCode)
	}
	return nil
}
