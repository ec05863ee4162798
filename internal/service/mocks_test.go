package service

import (
	"context"
	"fmt"
	"time"

	"trendora_back_end/internal/models"

	"github.com/gocql/gocql"
)

type mockOrderStore struct {
	orders        map[gocql.UUID]*models.Order
	insertErr     error
	getByIDsCalls int
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{orders: make(map[gocql.UUID]*models.Order)}
}

func (m *mockOrderStore) Insert(_ context.Context, order *models.Order) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	saved := *order
	m.orders[order.ID] = &saved
	return nil
}

func (m *mockOrderStore) Get(_ context.Context, orderID gocql.UUID) (*models.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderStore) GetByUser(_ context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderStore) GetAll(_ context.Context) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (m *mockOrderStore) GetByIDs(_ context.Context, orderIDs []gocql.UUID) (map[gocql.UUID]models.Order, error) {
	m.getByIDsCalls++
	result := make(map[gocql.UUID]models.Order)
	for _, id := range orderIDs {
		if order, ok := m.orders[id]; ok {
			result[id] = *order
		}
	}
	return result, nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, orderID gocql.UUID, _ string, status string, deliveredAt *time.Time) error {
	order, ok := m.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
	}
	return nil
}

// mockRefundStore tient les deux tables du store réel : la réservation par
// commande et le détail de la demande. Comme le store réel, une écriture du
// détail qui échoue relâche la réservation.
type mockRefundStore struct {
	refunds   map[gocql.UUID]*models.Refund
	byOrder   map[gocql.UUID]gocql.UUID
	detailErr error
}

func newMockRefundStore() *mockRefundStore {
	return &mockRefundStore{
		refunds: make(map[gocql.UUID]*models.Refund),
		byOrder: make(map[gocql.UUID]gocql.UUID),
	}
}

func (m *mockRefundStore) Insert(_ context.Context, refund *models.Refund) error {
	if _, exists := m.byOrder[refund.OrderID]; exists {
		return ErrRefundAlreadyRequested
	}
	m.byOrder[refund.OrderID] = refund.ID
	if m.detailErr != nil {
		delete(m.byOrder, refund.OrderID)
		return m.detailErr
	}
	saved := *refund
	m.refunds[refund.ID] = &saved
	return nil
}

func (m *mockRefundStore) Get(_ context.Context, refundID gocql.UUID) (*models.Refund, error) {
	refund, ok := m.refunds[refundID]
	if !ok {
		return nil, ErrRefundNotFound
	}
	copied := *refund
	return &copied, nil
}

func (m *mockRefundStore) GetByUser(_ context.Context, userID string) ([]models.Refund, error) {
	var refunds []models.Refund
	for _, refund := range m.refunds {
		if refund.UserID == userID {
			refunds = append(refunds, *refund)
		}
	}
	return refunds, nil
}

func (m *mockRefundStore) GetAll(_ context.Context) ([]models.Refund, error) {
	var refunds []models.Refund
	for _, refund := range m.refunds {
		refunds = append(refunds, *refund)
	}
	return refunds, nil
}

func (m *mockRefundStore) Review(_ context.Context, refundID gocql.UUID, status, reviewerID string, reviewedAt time.Time) error {
	refund, ok := m.refunds[refundID]
	if !ok {
		return ErrRefundNotFound
	}
	if refund.Status != models.RefundStatusPending {
		return ErrRefundAlreadyReviewed
	}
	refund.Status = status
	refund.ReviewedBy = &reviewerID
	refund.ReviewedAt = &reviewedAt
	return nil
}

func (m *mockRefundStore) UpdateStatus(_ context.Context, refundID gocql.UUID, status string) error {
	refund, ok := m.refunds[refundID]
	if !ok {
		return ErrRefundNotFound
	}
	refund.Status = status
	return nil
}

type mockStockChecker struct {
	failProduct string
	failMessage string
	checkErr    error
	decErr      error
	decremented []string
}

func (m *mockStockChecker) CheckStock(_ context.Context, productID, _ string, _ int) (bool, string, error) {
	if m.checkErr != nil {
		return false, "", m.checkErr
	}
	if productID == m.failProduct {
		return false, m.failMessage, nil
	}
	return true, "", nil
}

func (m *mockStockChecker) DecrementStock(_ context.Context, productID, _ string, _ int) error {
	if m.decErr != nil {
		return m.decErr
	}
	m.decremented = append(m.decremented, productID)
	return nil
}

type mockIdentityResolver struct {
	user *models.UserInfo
	err  error
}

func (m *mockIdentityResolver) GetUserByID(_ context.Context, _ string) (*models.UserInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

type mockProductResolver struct {
	infos map[string]models.ProductInfo
}

func (m *mockProductResolver) ResolveProducts(_ context.Context, productIDs []string) map[string]models.ProductInfo {
	result := make(map[string]models.ProductInfo)
	for _, id := range productIDs {
		if info, ok := m.infos[id]; ok {
			result[id] = info
		}
	}
	return result
}

type publishedEvent struct {
	name    string
	payload interface{}
}

type mockEventPublisher struct {
	events  []publishedEvent
	failErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, event string, payload interface{}) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.events = append(m.events, publishedEvent{name: event, payload: payload})
	return nil
}

func (m *mockEventPublisher) Reset() {
	m.events = nil
}

func (m *mockEventPublisher) countByName(name string) int {
	count := 0
	for _, event := range m.events {
		if event.name == name {
			count++
		}
	}
	return count
}

type testEnv struct {
	svc       *Service
	orders    *mockOrderStore
	refunds   *mockRefundStore
	stock     *mockStockChecker
	identity  *mockIdentityResolver
	products  *mockProductResolver
	publisher *mockEventPublisher
}

func setup() *testEnv {
	orders := newMockOrderStore()
	refunds := newMockRefundStore()
	stock := &mockStockChecker{}
	identity := &mockIdentityResolver{user: &models.UserInfo{Email: "client@test.tld", UserName: "Client Test"}}
	products := &mockProductResolver{infos: map[string]models.ProductInfo{}}
	publisher := &mockEventPublisher{}

	svc := New(orders, refunds, stock, identity, products, publisher, nil)
	return &testEnv{
		svc:       svc,
		orders:    orders,
		refunds:   refunds,
		stock:     stock,
		identity:  identity,
		products:  products,
		publisher: publisher,
	}
}

func (e *testEnv) seedOrder(userID, status string, items []models.OrderItem) *models.Order {
	order := &models.Order{
		ID:         gocql.TimeUUID(),
		UserID:     userID,
		Address:    "12 rue des Tests, Bruxelles",
		TotalPrice: 0,
		Items:      items,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	for _, item := range items {
		order.TotalPrice += item.Price * float64(item.Quantity)
	}
	if err := e.orders.Insert(context.Background(), order); err != nil {
		panic(fmt.Sprintf("seedOrder: %v", err))
	}
	return order
}
