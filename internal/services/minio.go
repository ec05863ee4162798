package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"trendora_back_end/internal/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

func ConnectMinio() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}
	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}

func invoiceBucket() string {
	bucket := os.Getenv("MINIO_INVOICE_BUCKET")
	if bucket == "" {
		bucket = "trendora-invoices"
	}
	return bucket
}

// InvoiceArchive archive chaque facture en objet JSON dans MinIO. Best-effort
// côté appelant : un échec d'archivage n'affecte jamais la commande.
type InvoiceArchive struct{}

func NewInvoiceArchive() *InvoiceArchive {
	return &InvoiceArchive{}
}

func (a *InvoiceArchive) Archive(ctx context.Context, invoice models.Invoice) error {
	if MinioClient == nil {
		return fmt.Errorf("MinIO non initialisé")
	}

	data, err := json.Marshal(invoice)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("invoices/%s.json", invoice.OrderID)
	_, err = MinioClient.PutObject(ctx, invoiceBucket(), key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return err
	}

	log.Printf("🪣 Facture archivée: %s", key)
	return nil
}

// GenerateInvoiceURL génère une URL signée de téléchargement pour la facture
// archivée d'une commande
func GenerateInvoiceURL(ctx context.Context, orderID string, duration time.Duration) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	key := fmt.Sprintf("invoices/%s.json", orderID)
	presignedURL, err := MinioClient.PresignedGetObject(ctx, invoiceBucket(), key, duration, nil)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}
