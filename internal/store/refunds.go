package store

import (
	"context"
	"errors"
	"log"
	"time"

	"trendora_back_end/internal/models"
	"trendora_back_end/internal/service"

	"github.com/gocql/gocql"
)

// ScyllaRefundStore persiste les demandes de remboursement. L'unicité par
// commande est tenue par une LWT sur refunds_by_order (clé order_id) : pas de
// fenêtre entre lecture et écriture, deux demandes concurrentes ne passent
// jamais toutes les deux.
type ScyllaRefundStore struct {
	session *gocql.Session
}

func NewScyllaRefundStore(session *gocql.Session) *ScyllaRefundStore {
	return &ScyllaRefundStore{session: session}
}

func (s *ScyllaRefundStore) Insert(ctx context.Context, refund *models.Refund) error {
	applied, err := s.session.Query(`
		INSERT INTO refunds_by_order (order_id, refund_id) VALUES (?, ?) IF NOT EXISTS
	`, refund.OrderID, refund.ID).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return service.ErrRefundAlreadyRequested
	}

	err = s.session.Query(`
		INSERT INTO refunds (refund_id, order_id, user_id, reason, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, refund.ID, refund.OrderID, refund.UserID, refund.Reason, refund.Status, refund.CreatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		// Sans le détail derrière elle, la réservation bloquerait la commande
		// pour toujours : on la relâche pour qu'une nouvelle demande reste
		// possible.
		if _, cErr := s.session.Query(`
			DELETE FROM refunds_by_order WHERE order_id = ? IF refund_id = ?
		`, refund.OrderID, refund.ID).WithContext(ctx).MapScanCAS(map[string]interface{}{}); cErr != nil {
			log.Printf("⚠️ Réservation de remboursement non relâchée pour commande %s: %v", refund.OrderID, cErr)
		}
		return err
	}
	return nil
}

func (s *ScyllaRefundStore) Get(ctx context.Context, refundID gocql.UUID) (*models.Refund, error) {
	var refund models.Refund

	err := s.session.Query(`
		SELECT refund_id, order_id, user_id, reason, status, reviewed_by, reviewed_at, created_at
		FROM refunds WHERE refund_id = ?
	`, refundID).WithContext(ctx).Scan(
		&refund.ID, &refund.OrderID, &refund.UserID, &refund.Reason,
		&refund.Status, &refund.ReviewedBy, &refund.ReviewedAt, &refund.CreatedAt)

	if errors.Is(err, gocql.ErrNotFound) {
		return nil, service.ErrRefundNotFound
	}
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (s *ScyllaRefundStore) GetByUser(ctx context.Context, userID string) ([]models.Refund, error) {
	iter := s.session.Query(`
		SELECT refund_id, order_id, user_id, reason, status, reviewed_by, reviewed_at, created_at
		FROM refunds WHERE user_id = ? ALLOW FILTERING
	`, userID).WithContext(ctx).Iter()

	return scanRefunds(iter)
}

func (s *ScyllaRefundStore) GetAll(ctx context.Context) ([]models.Refund, error) {
	iter := s.session.Query(`
		SELECT refund_id, order_id, user_id, reason, status, reviewed_by, reviewed_at, created_at
		FROM refunds
	`).WithContext(ctx).Iter()

	return scanRefunds(iter)
}

// Review instruit une demande encore PENDING. La condition IF status = ? fait
// perdre proprement la seconde révision concurrente.
func (s *ScyllaRefundStore) Review(ctx context.Context, refundID gocql.UUID, status, reviewerID string, reviewedAt time.Time) error {
	applied, err := s.session.Query(`
		UPDATE refunds SET status = ?, reviewed_by = ?, reviewed_at = ?
		WHERE refund_id = ? IF status = ?
	`, status, reviewerID, reviewedAt, refundID, models.RefundStatusPending).
		WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return service.ErrRefundAlreadyReviewed
	}
	return nil
}

func (s *ScyllaRefundStore) UpdateStatus(ctx context.Context, refundID gocql.UUID, status string) error {
	return s.session.Query(`UPDATE refunds SET status = ? WHERE refund_id = ?`,
		status, refundID).WithContext(ctx).Exec()
}

func scanRefunds(iter *gocql.Iter) ([]models.Refund, error) {
	var refunds []models.Refund

	var refund models.Refund
	for iter.Scan(&refund.ID, &refund.OrderID, &refund.UserID, &refund.Reason,
		&refund.Status, &refund.ReviewedBy, &refund.ReviewedAt, &refund.CreatedAt) {
		refunds = append(refunds, refund)
		refund = models.Refund{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return refunds, nil
}
