package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"trendora_back_end/internal/models"
	"trendora_back_end/internal/service"

	"github.com/gocql/gocql"
)

// ScyllaOrderStore persiste les commandes dans le keyspace orders. Chaque
// commande est écrite deux fois : dans orders (clé order_id) et dans
// orders_by_user (clé user_id) pour l'historique par utilisateur.
type ScyllaOrderStore struct {
	session *gocql.Session
}

func NewScyllaOrderStore(session *gocql.Session) *ScyllaOrderStore {
	return &ScyllaOrderStore{session: session}
}

func (s *ScyllaOrderStore) Insert(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("sérialisation des articles: %w", err)
	}

	err = s.session.Query(`
		INSERT INTO orders (order_id, user_id, address, total_price, items, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, order.ID, order.UserID, order.Address, order.TotalPrice, string(itemsJSON), order.Status, order.CreatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	err = s.session.Query(`
		INSERT INTO orders_by_user (user_id, order_id, address, total_price, items, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, order.UserID, order.ID, order.Address, order.TotalPrice, string(itemsJSON), order.Status, order.CreatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		// La vue par utilisateur est une duplication : on journalise sans
		// invalider l'écriture principale
		log.Printf("⚠️ Erreur écriture orders_by_user pour %s: %v", order.ID, err)
	}

	return nil
}

func (s *ScyllaOrderStore) Get(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	var (
		order       models.Order
		itemsJSON   string
		deliveredAt *time.Time
	)

	err := s.session.Query(`
		SELECT order_id, user_id, address, total_price, items, status, created_at, delivered_at
		FROM orders WHERE order_id = ?
	`, orderID).WithContext(ctx).Scan(
		&order.ID, &order.UserID, &order.Address, &order.TotalPrice,
		&itemsJSON, &order.Status, &order.CreatedAt, &deliveredAt)

	if errors.Is(err, gocql.ErrNotFound) {
		return nil, service.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order.DeliveredAt = deliveredAt
	order.Items = decodeItems(orderID, itemsJSON)
	return &order, nil
}

func (s *ScyllaOrderStore) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.session.Query(`
		SELECT order_id, user_id, address, total_price, items, status, created_at, delivered_at
		FROM orders_by_user WHERE user_id = ?
	`, userID).WithContext(ctx).Iter()

	orders, err := scanOrders(iter)
	if err != nil {
		return nil, err
	}

	// Plus récentes en tête
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *ScyllaOrderStore) GetAll(ctx context.Context) ([]models.Order, error) {
	iter := s.session.Query(`
		SELECT order_id, user_id, address, total_price, items, status, created_at, delivered_at
		FROM orders
	`).WithContext(ctx).Iter()

	orders, err := scanOrders(iter)
	if err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *ScyllaOrderStore) GetByIDs(ctx context.Context, orderIDs []gocql.UUID) (map[gocql.UUID]models.Order, error) {
	result := make(map[gocql.UUID]models.Order, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	iter := s.session.Query(`
		SELECT order_id, user_id, address, total_price, items, status, created_at, delivered_at
		FROM orders WHERE order_id IN ?
	`, orderIDs).WithContext(ctx).Iter()

	orders, err := scanOrders(iter)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		result[order.ID] = order
	}
	return result, nil
}

func (s *ScyllaOrderStore) UpdateStatus(ctx context.Context, orderID gocql.UUID, userID, status string, deliveredAt *time.Time) error {
	var err error
	if deliveredAt != nil {
		err = s.session.Query(`UPDATE orders SET status = ?, delivered_at = ? WHERE order_id = ?`,
			status, *deliveredAt, orderID).WithContext(ctx).Exec()
	} else {
		err = s.session.Query(`UPDATE orders SET status = ? WHERE order_id = ?`,
			status, orderID).WithContext(ctx).Exec()
	}
	if err != nil {
		return err
	}

	if deliveredAt != nil {
		err = s.session.Query(`UPDATE orders_by_user SET status = ?, delivered_at = ? WHERE user_id = ? AND order_id = ?`,
			status, *deliveredAt, userID, orderID).WithContext(ctx).Exec()
	} else {
		err = s.session.Query(`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`,
			status, userID, orderID).WithContext(ctx).Exec()
	}
	if err != nil {
		log.Printf("⚠️ Erreur mise à jour orders_by_user pour %s: %v", orderID, err)
	}

	return nil
}

func scanOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order

	var (
		order       models.Order
		itemsJSON   string
		deliveredAt *time.Time
	)
	for iter.Scan(&order.ID, &order.UserID, &order.Address, &order.TotalPrice,
		&itemsJSON, &order.Status, &order.CreatedAt, &deliveredAt) {
		order.Items = decodeItems(order.ID, itemsJSON)
		order.DeliveredAt = deliveredAt
		orders = append(orders, order)

		order = models.Order{}
		deliveredAt = nil
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

func decodeItems(orderID gocql.UUID, itemsJSON string) []models.OrderItem {
	var items []models.OrderItem
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			log.Printf("⚠️ Erreur désérialisation items de %s: %v", orderID, err)
			items = []models.OrderItem{}
		}
	}
	return items
}
