package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"trendora_back_end/internal/clients"
	"trendora_back_end/internal/database"
	"trendora_back_end/internal/models"
)

const ProductCacheTTL = 10 * time.Minute

// ProductCache résout les fiches produits via Redis puis le service produits.
// Toujours best-effort : un échec (Redis ou HTTP) laisse simplement
// l'identifiant absent de la map, l'appelant mettra un placeholder.
type ProductCache struct {
	products *clients.ProductClient
}

func NewProductCache(products *clients.ProductClient) *ProductCache {
	return &ProductCache{products: products}
}

func (c *ProductCache) ResolveProducts(ctx context.Context, productIDs []string) map[string]models.ProductInfo {
	result := make(map[string]models.ProductInfo)
	missingIDs := []string{}

	// 1. Essayer de récupérer depuis Redis
	for _, productID := range productIDs {
		if _, done := result[productID]; done {
			continue
		}
		key := "product_info:" + productID
		data, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			var info models.ProductInfo
			if json.Unmarshal([]byte(data), &info) == nil {
				result[productID] = info
				continue
			}
		}
		missingIDs = append(missingIDs, productID)
	}

	// 2. Récupérer les produits manquants depuis le service produits
	if len(missingIDs) > 0 {
		fetched, err := c.products.GetProducts(ctx, missingIDs)
		if err != nil {
			log.Printf("⚠️ Résolution produits échouée (%d ids): %v", len(missingIDs), err)
			return result
		}

		for productID, info := range fetched {
			result[productID] = info

			// Mettre en cache
			jsonData, err := json.Marshal(info)
			if err == nil {
				database.Redis.Set(ctx, "product_info:"+productID, jsonData, ProductCacheTTL)
			}
		}
	}

	return result
}

// InvalidateProduct invalide le cache d'un produit
func InvalidateProduct(ctx context.Context, productID string) {
	database.Redis.Del(ctx, "product_info:"+productID)
}
