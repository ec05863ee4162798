package service

import (
	"context"
	"errors"
	"time"

	"trendora_back_end/internal/models"

	"github.com/gocql/gocql"
)

var (
	ErrInvalidCard            = errors.New("informations de carte invalides")
	ErrEmptyOrder             = errors.New("la commande ne contient aucun article")
	ErrInvalidQuantity        = errors.New("chaque article doit avoir une quantité positive")
	ErrOrderNotFound          = errors.New("commande introuvable")
	ErrRefundNotFound         = errors.New("demande de remboursement introuvable")
	ErrNotOrderOwner          = errors.New("cette commande ne vous appartient pas")
	ErrOrderNotCancellable    = errors.New("cette commande ne peut plus être annulée")
	ErrRefundAlreadyRequested = errors.New("une demande de remboursement existe déjà pour cette commande")
	ErrRefundAlreadyReviewed  = errors.New("cette demande a déjà été traitée")
	ErrInvalidTransition      = errors.New("transition de statut non autorisée")
	ErrUnknownStatus          = errors.New("statut inconnu")
	ErrStockUnavailable       = errors.New("stock insuffisant")
	ErrIdentityUnavailable    = errors.New("impossible de résoudre l'identité du client")
)

// OrderStore persiste les commandes (ScyllaDB en production)
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, orderID gocql.UUID) (*models.Order, error)
	GetByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByIDs(ctx context.Context, orderIDs []gocql.UUID) (map[gocql.UUID]models.Order, error)
	UpdateStatus(ctx context.Context, orderID gocql.UUID, userID, status string, deliveredAt *time.Time) error
}

// RefundStore persiste les demandes de remboursement. Insert doit garantir
// l'unicité par commande (une seule demande par order_id, quel que soit son
// statut) et renvoyer ErrRefundAlreadyRequested sinon. Review n'aboutit que si
// la demande est encore PENDING (ErrRefundAlreadyReviewed sinon).
type RefundStore interface {
	Insert(ctx context.Context, refund *models.Refund) error
	Get(ctx context.Context, refundID gocql.UUID) (*models.Refund, error)
	GetByUser(ctx context.Context, userID string) ([]models.Refund, error)
	GetAll(ctx context.Context) ([]models.Refund, error)
	Review(ctx context.Context, refundID gocql.UUID, status, reviewerID string, reviewedAt time.Time) error
	UpdateStatus(ctx context.Context, refundID gocql.UUID, status string) error
}

// StockChecker est le contrat consommé auprès du service produits
type StockChecker interface {
	CheckStock(ctx context.Context, productID, size string, quantity int) (bool, string, error)
	DecrementStock(ctx context.Context, productID, size string, quantity int) error
}

// IdentityResolver est le contrat consommé auprès du service utilisateurs
type IdentityResolver interface {
	GetUserByID(ctx context.Context, userID string) (*models.UserInfo, error)
}

// ProductResolver résout les noms/images produits, toujours best-effort :
// les identifiants absents de la map sont remplacés par un placeholder.
type ProductResolver interface {
	ResolveProducts(ctx context.Context, productIDs []string) map[string]models.ProductInfo
}

// EventPublisher publie les événements métier vers le pipeline de
// notification. La publication est fire-and-forget : un échec est journalisé
// par l'appelant et ne fait jamais échouer l'opération.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// InvoiceArchiver archive le détail de facturation (MinIO en production)
type InvoiceArchiver interface {
	Archive(ctx context.Context, invoice models.Invoice) error
}

// Service est le moteur du cycle de vie commande/remboursement
type Service struct {
	orders   OrderStore
	refunds  RefundStore
	stock    StockChecker
	identity IdentityResolver
	products ProductResolver
	events   EventPublisher
	archive  InvoiceArchiver // optionnel
}

func New(orders OrderStore, refunds RefundStore, stock StockChecker, identity IdentityResolver, products ProductResolver, events EventPublisher, archive InvoiceArchiver) *Service {
	return &Service{
		orders:   orders,
		refunds:  refunds,
		stock:    stock,
		identity: identity,
		products: products,
		events:   events,
		archive:  archive,
	}
}
