package service

import (
	"context"
	"errors"
	"testing"

	"trendora_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	input := CreateOrderInput{
		UserID:          "u1",
		Address:         "12 rue des Tests, Bruxelles",
		CardInformation: "1111222233334444 123 12/30",
		Items: []models.OrderItem{
			{ProductID: "p1", Quantity: 2, Size: "M", Price: 50},
			{ProductID: "p2", Quantity: 1, Size: "L", Price: 30},
		},
	}

	t.Run("Succès", func(t *testing.T) {
		env := setup()
		env.products.infos["p1"] = models.ProductInfo{Name: "Pull", Image: "pull.png"}

		order, invoice, err := env.svc.CreateOrder(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, order)
		require.NotNil(t, invoice)

		assert.Equal(t, models.OrderStatusProcessing, order.Status)
		assert.InDelta(t, 130.0, order.TotalPrice, 1e-9)
		assert.Equal(t, "u1", order.UserID)

		saved, ok := env.orders.orders[order.ID]
		require.True(t, ok)
		assert.Equal(t, models.OrderStatusProcessing, saved.Status)

		// Facture : barème fixe, carte masquée, identité résolue
		assert.InDelta(t, 130.0, invoice.SubTotal, 1e-9)
		assert.InDelta(t, 303.4, invoice.FinalTotal, 1e-9)
		assert.Equal(t, "**** **** **** 4444", invoice.MaskedCard)
		assert.Equal(t, "Client Test", invoice.UserName)

		// Enrichissement best-effort : p1 résolu, p2 en placeholder
		assert.Equal(t, "Pull", invoice.Items[0].ProductName)
		assert.Equal(t, "Produit p2", invoice.Items[1].ProductName)

		// invoice-created émis exactement une fois
		assert.Equal(t, 1, env.publisher.countByName(models.EventInvoiceCreated))

		// Stock décrémenté pour chaque ligne
		assert.ElementsMatch(t, []string{"p1", "p2"}, env.stock.decremented)
	})

	t.Run("Panier vide", func(t *testing.T) {
		env := setup()
		empty := input
		empty.Items = nil

		_, _, err := env.svc.CreateOrder(ctx, empty)

		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Empty(t, env.orders.orders)
	})

	t.Run("Quantité nulle", func(t *testing.T) {
		env := setup()
		bad := input
		bad.Items = []models.OrderItem{{ProductID: "p1", Quantity: 0, Price: 50}}

		_, _, err := env.svc.CreateOrder(ctx, bad)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Empty(t, env.orders.orders)
	})

	t.Run("Carte invalide — aucun effet de bord", func(t *testing.T) {
		env := setup()
		bad := input
		bad.CardInformation = "1234123412341234 123 13/25"

		_, _, err := env.svc.CreateOrder(ctx, bad)

		assert.ErrorIs(t, err, ErrInvalidCard)
		assert.Empty(t, env.orders.orders)
		assert.Empty(t, env.publisher.events)
		assert.Empty(t, env.stock.decremented)
	})

	t.Run("Stock insuffisant — message remonté", func(t *testing.T) {
		env := setup()
		env.stock.failProduct = "p2"
		env.stock.failMessage = "Stock insuffisant pour la taille L"

		_, _, err := env.svc.CreateOrder(ctx, input)

		assert.ErrorIs(t, err, ErrStockUnavailable)
		assert.Contains(t, err.Error(), "Stock insuffisant pour la taille L")
		assert.Empty(t, env.orders.orders)
		assert.Empty(t, env.stock.decremented)
	})

	t.Run("Service stock injoignable", func(t *testing.T) {
		env := setup()
		env.stock.checkErr = errors.New("connexion refusée")

		_, _, err := env.svc.CreateOrder(ctx, input)

		require.Error(t, err)
		assert.Empty(t, env.orders.orders)
	})

	t.Run("Identité irrésolue — échec bloquant", func(t *testing.T) {
		env := setup()
		env.identity.err = errors.New("service indisponible")

		_, _, err := env.svc.CreateOrder(ctx, input)

		assert.ErrorIs(t, err, ErrIdentityUnavailable)
		assert.Empty(t, env.orders.orders)
		assert.Empty(t, env.publisher.events)
	})

	t.Run("Échec de persistance — aucun événement", func(t *testing.T) {
		env := setup()
		env.orders.insertErr = errors.New("timeout scylla")

		_, _, err := env.svc.CreateOrder(ctx, input)

		require.Error(t, err)
		assert.Empty(t, env.publisher.events)
	})

	t.Run("Total à zéro accepté", func(t *testing.T) {
		env := setup()
		free := input
		free.Items = []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 0}}

		order, _, err := env.svc.CreateOrder(ctx, free)

		require.NoError(t, err)
		assert.Zero(t, order.TotalPrice)
	})

	t.Run("Échec de publication absorbé", func(t *testing.T) {
		env := setup()
		env.publisher.failErr = errors.New("broker injoignable")

		order, _, err := env.svc.CreateOrder(ctx, input)

		require.NoError(t, err)
		assert.NotNil(t, order)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	items := []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 10}}

	t.Run("Chaîne de livraison complète", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusProcessing, items)

		chain := []string{
			models.OrderStatusApproved,
			models.OrderStatusShipped,
			models.OrderStatusOnWay,
			models.OrderStatusDelivering,
			models.OrderStatusDelivered,
		}
		for _, status := range chain {
			updated, err := env.svc.UpdateOrderStatus(ctx, order.ID, status)
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}

		saved := env.orders.orders[order.ID]
		assert.Equal(t, models.OrderStatusDelivered, saved.Status)
		require.NotNil(t, saved.DeliveredAt)

		// L'historique par utilisateur porte aussi la date de livraison
		history, err := env.svc.GetOrderHistory(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.NotNil(t, history[0].DeliveredAt)
		assert.Equal(t, *saved.DeliveredAt, *history[0].DeliveredAt)

		assert.Equal(t, len(chain), env.publisher.countByName(models.EventOrderStatusChanged))
	})

	t.Run("Transition interdite", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusProcessing, items)

		_, err := env.svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, models.OrderStatusProcessing, env.orders.orders[order.ID].Status)
	})

	t.Run("Statut terminal inamovible", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusDelivered, items)

		_, err := env.svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusApproved)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = env.svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusRejected)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("Statut inconnu", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusProcessing, items)

		_, err := env.svc.UpdateOrderStatus(ctx, order.ID, "EXPEDIEE")
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})

	t.Run("Commande introuvable", func(t *testing.T) {
		env := setup()

		_, err := env.svc.UpdateOrderStatus(ctx, gocql.TimeUUID(), models.OrderStatusApproved)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	items := []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 10}}

	t.Run("Annulation en PROCESSING", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusProcessing, items)

		err := env.svc.CancelOrder(ctx, order.ID, "u1", "changement d'avis")

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusRejected, env.orders.orders[order.ID].Status)

		require.Equal(t, 1, env.publisher.countByName(models.EventOrderCancelled))
		payload := env.publisher.events[0].payload.(models.OrderCancelledEvent)
		assert.Equal(t, "changement d'avis", payload.Reason)
	})

	t.Run("Annulation en APPROVED avec motif par défaut", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusApproved, items)

		err := env.svc.CancelOrder(ctx, order.ID, "u1", "")

		require.NoError(t, err)
		payload := env.publisher.events[0].payload.(models.OrderCancelledEvent)
		assert.Equal(t, "Non précisée", payload.Reason)
	})

	t.Run("Commande d'un autre utilisateur", func(t *testing.T) {
		env := setup()
		order := env.seedOrder("u1", models.OrderStatusProcessing, items)

		err := env.svc.CancelOrder(ctx, order.ID, "u2", "")

		assert.ErrorIs(t, err, ErrNotOrderOwner)
		assert.Equal(t, models.OrderStatusProcessing, env.orders.orders[order.ID].Status)
	})

	t.Run("Statuts non annulables", func(t *testing.T) {
		for _, status := range []string{
			models.OrderStatusShipped,
			models.OrderStatusOnWay,
			models.OrderStatusDelivering,
			models.OrderStatusDelivered,
			models.OrderStatusRejected,
		} {
			env := setup()
			order := env.seedOrder("u1", status, items)

			err := env.svc.CancelOrder(ctx, order.ID, "u1", "")

			assert.ErrorIs(t, err, ErrOrderNotCancellable, "statut %s", status)
			assert.Equal(t, status, env.orders.orders[order.ID].Status)
			assert.Empty(t, env.publisher.events)
		}
	})

	t.Run("Commande introuvable", func(t *testing.T) {
		env := setup()
		err := env.svc.CancelOrder(ctx, gocql.TimeUUID(), "u1", "")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderHistories(t *testing.T) {
	ctx := context.Background()

	env := setup()
	env.seedOrder("u1", models.OrderStatusProcessing, []models.OrderItem{
		{ProductID: "p1", Quantity: 2, Price: 50},
		{ProductID: "p2", Quantity: 3, Price: 30},
	})
	env.seedOrder("u2", models.OrderStatusDelivered, []models.OrderItem{
		{ProductID: "p3", Quantity: 1, Price: 10},
	})

	t.Run("Historique par utilisateur avec quantité totale", func(t *testing.T) {
		summaries, err := env.svc.GetOrderHistory(ctx, "u1")

		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 5, summaries[0].TotalQuantity)
		assert.InDelta(t, 190.0, summaries[0].TotalPrice, 1e-9)
	})

	t.Run("Vue admin toutes commandes", func(t *testing.T) {
		summaries, err := env.svc.GetAllOrderHistories(ctx)

		require.NoError(t, err)
		assert.Len(t, summaries, 2)
	})

	t.Run("Lectures pures et répétables", func(t *testing.T) {
		first, err := env.svc.GetOrderHistory(ctx, "u1")
		require.NoError(t, err)
		second, err := env.svc.GetOrderHistory(ctx, "u1")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
