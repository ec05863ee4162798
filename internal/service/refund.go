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

// RequestRefund ouvre une demande de remboursement PENDING. L'unicité par
// commande est garantie par le store (une demande rejetée bloque aussi toute
// nouvelle demande).
func (s *Service) RequestRefund(ctx context.Context, orderID gocql.UUID, userID, reason string) (*models.Refund, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}

	refund := &models.Refund{
		ID:        gocql.UUID(uuid.New()),
		OrderID:   orderID,
		UserID:    userID,
		Reason:    reason,
		Status:    models.RefundStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.refunds.Insert(ctx, refund); err != nil {
		return nil, err
	}

	log.Printf("💰 Demande de remboursement %s créée pour commande %s", refund.ID, orderID)
	return refund, nil
}

// ApproveRefund approuve une demande PENDING : horodate le réviseur, force la
// commande en REJECTED et publie refund-approved avec les lignes et le total
// pour le crédit aval.
func (s *Service) ApproveRefund(ctx context.Context, refundID gocql.UUID, reviewerID string) (*models.Refund, error) {
	return s.reviewRefund(ctx, refundID, reviewerID, models.RefundStatusApproved)
}

// RejectRefund rejette une demande PENDING. La commande passe elle aussi en
// REJECTED : une fois la demande instruite, la commande est close dans les
// deux cas.
func (s *Service) RejectRefund(ctx context.Context, refundID gocql.UUID, reviewerID string) (*models.Refund, error) {
	return s.reviewRefund(ctx, refundID, reviewerID, models.RefundStatusRejected)
}

func (s *Service) reviewRefund(ctx context.Context, refundID gocql.UUID, reviewerID, decision string) (*models.Refund, error) {
	refund, err := s.refunds.Get(ctx, refundID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, refund.OrderID)
	if err != nil {
		return nil, err
	}

	reviewedAt := time.Now().UTC()
	// Transition conditionnelle : seule une demande encore PENDING peut être
	// instruite, deux révisions concurrentes ne s'écrasent pas.
	if err := s.refunds.Review(ctx, refundID, decision, reviewerID, reviewedAt); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, order.UserID, models.OrderStatusRejected, nil); err != nil {
		log.Printf("⚠️ Passage en REJECTED de la commande %s échoué: %v", order.ID, err)
	}

	refund.Status = decision
	refund.ReviewedBy = &reviewerID
	refund.ReviewedAt = &reviewedAt

	switch decision {
	case models.RefundStatusApproved:
		s.emit(ctx, models.EventRefundApproved, models.RefundApprovedEvent{
			UserID:     refund.UserID,
			OrderID:    order.ID,
			Items:      order.Items,
			TotalPrice: order.TotalPrice,
		})
		log.Printf("✅ Remboursement %s approuvé par %s", refundID, reviewerID)
	case models.RefundStatusRejected:
		s.emit(ctx, models.EventOrderRefundRejected, models.OrderRefundRejectedEvent{
			OrderID: order.ID,
		})
		log.Printf("❌ Remboursement %s rejeté par %s", refundID, reviewerID)
	}

	return refund, nil
}

// ChangeRefundStatus force le statut d'une demande (outil admin, sans
// horodatage de révision)
func (s *Service) ChangeRefundStatus(ctx context.Context, refundID gocql.UUID, status string) (*models.Refund, error) {
	switch status {
	case models.RefundStatusPending, models.RefundStatusApproved, models.RefundStatusRejected:
	default:
		return nil, ErrUnknownStatus
	}

	refund, err := s.refunds.Get(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if err := s.refunds.UpdateStatus(ctx, refundID, status); err != nil {
		return nil, fmt.Errorf("mise à jour du remboursement: %w", err)
	}

	refund.Status = status
	log.Printf("✅ Remboursement %s: statut %s", refundID, status)
	return refund, nil
}

// GetUserRefunds renvoie les demandes de remboursement d'un utilisateur
func (s *Service) GetUserRefunds(ctx context.Context, userID string) ([]models.Refund, error) {
	return s.refunds.GetByUser(ctx, userID)
}

// GetAllRefunds joint chaque demande à sa commande (une seule lecture batch
// sur l'ensemble des order_id référencés) pour exposer la date de commande et
// les produits concernés.
func (s *Service) GetAllRefunds(ctx context.Context) ([]models.RefundSummary, error) {
	refunds, err := s.refunds.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[gocql.UUID]bool, len(refunds))
	orderIDs := make([]gocql.UUID, 0, len(refunds))
	for _, refund := range refunds {
		if !seen[refund.OrderID] {
			seen[refund.OrderID] = true
			orderIDs = append(orderIDs, refund.OrderID)
		}
	}

	orders, err := s.orders.GetByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RefundSummary, 0, len(refunds))
	for _, refund := range refunds {
		summary := models.RefundSummary{
			ID:        refund.ID,
			OrderID:   refund.OrderID,
			UserID:    refund.UserID,
			Reason:    refund.Reason,
			Status:    refund.Status,
			CreatedAt: refund.CreatedAt,
		}
		if order, ok := orders[refund.OrderID]; ok {
			summary.OrderDate = order.CreatedAt
			for _, item := range order.Items {
				summary.ProductIDs = append(summary.ProductIDs, item.ProductID)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
