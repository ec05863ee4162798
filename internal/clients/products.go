package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"trendora_back_end/internal/models"
)

// ProductClient récupère les fiches produits (nom, image) auprès du service
// produits. Les appelants traitent ses échecs en best-effort.
type ProductClient struct {
	baseURL string
	client  *http.Client
}

func NewProductClient() *ProductClient {
	baseURL := os.Getenv("PRODUCT_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8081"
	}
	return &ProductClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

// GetProducts récupère plusieurs fiches en un appel. Les identifiants
// inconnus sont simplement absents de la map.
func (c *ProductClient) GetProducts(ctx context.Context, productIDs []string) (map[string]models.ProductInfo, error) {
	if len(productIDs) == 0 {
		return map[string]models.ProductInfo{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := url.Values{}
	q.Set("ids", strings.Join(productIDs, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/internal/products?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service produits: statut %d", resp.StatusCode)
	}

	var products map[string]models.ProductInfo
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}
