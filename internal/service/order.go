package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"trendora_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Table des transitions autorisées pour la mise à jour générique de statut :
// statut cible → statuts de départ acceptés. Tout le reste est refusé avec
// ErrInvalidTransition.
var allowedTransitions = map[string][]string{
	models.OrderStatusApproved:   {models.OrderStatusProcessing},
	models.OrderStatusShipped:    {models.OrderStatusApproved},
	models.OrderStatusOnWay:      {models.OrderStatusShipped},
	models.OrderStatusDelivering: {models.OrderStatusOnWay},
	models.OrderStatusDelivered:  {models.OrderStatusDelivering},
	models.OrderStatusRejected: {
		models.OrderStatusProcessing,
		models.OrderStatusApproved,
		models.OrderStatusShipped,
		models.OrderStatusOnWay,
		models.OrderStatusDelivering,
	},
}

type CreateOrderInput struct {
	UserID          string
	Address         string
	CardInformation string
	Items           []models.OrderItem
}

// CreateOrder valide la carte et le stock, persiste la commande en
// PROCESSING, décrémente le stock, assemble la facture et publie
// l'événement invoice-created (une seule fois par création).
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, *models.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, nil, ErrEmptyOrder
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, nil, ErrInvalidQuantity
		}
	}

	cardNumber, ok := validateCard(in.CardInformation)
	if !ok {
		return nil, nil, ErrInvalidCard
	}

	// Vérifier le stock de chaque ligne avant toute écriture
	for _, item := range in.Items {
		available, message, err := s.stock.CheckStock(ctx, item.ProductID, item.Size, item.Quantity)
		if err != nil {
			return nil, nil, fmt.Errorf("vérification du stock impossible pour %s: %w", item.ProductID, err)
		}
		if !available {
			return nil, nil, fmt.Errorf("%w: %s", ErrStockUnavailable, message)
		}
	}

	// L'identité est résolue avant la persistance : son échec est bloquant
	user, err := s.identity.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}

	order := &models.Order{
		ID:         gocql.UUID(uuid.New()),
		UserID:     in.UserID,
		Address:    in.Address,
		TotalPrice: computeSubTotal(in.Items),
		Items:      in.Items,
		Status:     models.OrderStatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("création de la commande: %w", err)
	}

	// Décrément du stock après persistance. Best-effort : la fenêtre entre
	// vérification et décrément est assumée, un échec ici est journalisé
	// sans annuler la commande.
	for _, item := range order.Items {
		if err := s.stock.DecrementStock(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			log.Printf("⚠️ Décrément stock échoué pour %s (commande %s): %v", item.ProductID, order.ID, err)
		}
	}

	invoiceItems := s.enrichItems(ctx, order.Items)
	invoice := buildInvoice(order, user, cardNumber, invoiceItems)

	s.emit(ctx, models.EventInvoiceCreated, invoice)

	if s.archive != nil {
		go func(inv models.Invoice) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.archive.Archive(ctx, inv); err != nil {
				log.Printf("⚠️ Archivage facture %s échoué: %v", inv.OrderID, err)
			}
		}(invoice)
	}

	log.Printf("✅ Commande %s créée pour %s (%.2f)", order.ID, order.UserID, order.TotalPrice)
	return order, &invoice, nil
}

// UpdateOrderStatus applique une transition de statut validée par la table
// allowedTransitions. L'arrivée en DELIVERED fige delivered_at.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID gocql.UUID, newStatus string) (*models.Order, error) {
	froms, known := allowedTransitions[newStatus]
	if !known {
		return nil, ErrUnknownStatus
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	permitted := false
	for _, from := range froms {
		if order.Status == from {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, newStatus)
	}

	var deliveredAt *time.Time
	if newStatus == models.OrderStatusDelivered {
		t := time.Now().UTC()
		deliveredAt = &t
	}

	if err := s.orders.UpdateStatus(ctx, orderID, order.UserID, newStatus, deliveredAt); err != nil {
		return nil, fmt.Errorf("mise à jour du statut: %w", err)
	}

	order.Status = newStatus
	order.DeliveredAt = deliveredAt

	s.emit(ctx, models.EventOrderStatusChanged, models.OrderStatusChangedEvent{
		OrderID: orderID,
		UserID:  order.UserID,
		Status:  newStatus,
	})

	log.Printf("✅ Commande %s: statut %s", orderID, newStatus)
	return order, nil
}

// CancelOrder annule une commande qui n'est pas encore expédiée. Transition
// à sens unique vers REJECTED.
func (s *Service) CancelOrder(ctx context.Context, orderID gocql.UUID, userID, reason string) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return ErrNotOrderOwner
	}
	if order.Status != models.OrderStatusProcessing && order.Status != models.OrderStatusApproved {
		return ErrOrderNotCancellable
	}

	if err := s.orders.UpdateStatus(ctx, orderID, order.UserID, models.OrderStatusRejected, nil); err != nil {
		return fmt.Errorf("annulation de la commande: %w", err)
	}

	if reason == "" {
		reason = "Non précisée"
	}
	s.emit(ctx, models.EventOrderCancelled, models.OrderCancelledEvent{
		OrderID: orderID,
		UserID:  userID,
		Reason:  reason,
	})

	log.Printf("✅ Commande %s annulée par %s", orderID, userID)
	return nil
}

// GetOrderByID renvoie le détail d'une commande, lignes enrichies des
// noms/images produits (best-effort).
func (s *Service) GetOrderByID(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = s.enrichItems(ctx, order.Items)
	return order, nil
}

// GetOrderHistory renvoie les commandes d'un utilisateur, plus récentes en tête
func (s *Service) GetOrderHistory(ctx context.Context, userID string) ([]models.OrderSummary, error) {
	orders, err := s.orders.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, orders), nil
}

// GetAllOrderHistories renvoie toutes les commandes (vue admin)
func (s *Service) GetAllOrderHistories(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, orders), nil
}

func (s *Service) summarize(ctx context.Context, orders []models.Order) []models.OrderSummary {
	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		totalQuantity := 0
		for _, item := range order.Items {
			totalQuantity += item.Quantity
		}
		summaries = append(summaries, models.OrderSummary{
			ID:            order.ID,
			UserID:        order.UserID,
			Status:        order.Status,
			TotalPrice:    order.TotalPrice,
			TotalQuantity: totalQuantity,
			Items:         s.enrichItems(ctx, order.Items),
			CreatedAt:     order.CreatedAt,
			DeliveredAt:   order.DeliveredAt,
		})
	}
	return summaries
}

// enrichItems complète chaque ligne avec le nom et l'image du produit.
// Toujours best-effort : produit inconnu → nom de repli, image vide.
func (s *Service) enrichItems(ctx context.Context, items []models.OrderItem) []models.OrderItem {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	resolved := s.products.ResolveProducts(ctx, ids)

	enriched := make([]models.OrderItem, len(items))
	copy(enriched, items)
	for i := range enriched {
		if info, ok := resolved[enriched[i].ProductID]; ok {
			enriched[i].ProductName = info.Name
			enriched[i].Image = info.Image
		} else {
			enriched[i].ProductName = "Produit " + enriched[i].ProductID
			enriched[i].Image = ""
		}
	}
	return enriched
}

// emit publie un événement vers le pipeline de notification. La réponse au
// client n'attend jamais le pipeline : un échec est journalisé, c'est tout.
func (s *Service) emit(ctx context.Context, event string, payload interface{}) {
	if err := s.events.Publish(ctx, event, payload); err != nil {
		log.Printf("⚠️ Publication %s échouée: %v", event, err)
	}
}
