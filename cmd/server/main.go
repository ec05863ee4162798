package main

import (
	"context"
	"log"
	"os"

	"trendora_back_end/internal/cache"
	"trendora_back_end/internal/clients"
	"trendora_back_end/internal/config"
	"trendora_back_end/internal/database"
	"trendora_back_end/internal/events"
	"trendora_back_end/internal/handlers/order"
	"trendora_back_end/internal/handlers/refund"
	"trendora_back_end/internal/routes"
	"trendora_back_end/internal/service"
	"trendora_back_end/internal/services"
	"trendora_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	services.ConnectMinio()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	publisher, err := events.Connect()
	if err != nil {
		log.Fatalf("❌ Impossible d'initialiser RabbitMQ: %v", err)
	}
	defer publisher.Close()

	session, err := database.GetOrdersSession()
	if err != nil {
		log.Fatalf("❌ Session ScyllaDB orders indisponible: %v", err)
	}

	productClient := clients.NewProductClient()

	svc := service.New(
		store.NewScyllaOrderStore(session),
		store.NewScyllaRefundStore(session),
		clients.NewStockClient(),
		clients.NewIdentityClient(),
		cache.NewProductCache(productClient),
		publisher,
		services.NewInvoiceArchive(),
	)

	r := gin.Default()
	routes.RegisterRoutes(r, order.NewHandler(svc), refund.NewHandler(svc))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Service commandes Trendora lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	// Faire un ping pour établir la connexion
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
