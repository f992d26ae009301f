package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

func TestOrderRepository_CreateForcesPending(t *testing.T) {
	repo := NewOrderRepository()

	created, err := repo.Create(domain.Order{
		UserID: "user-1",
		Status: domain.OrderStatusAccepted,
	})
	require.NoError(t, err)
	// Статус при создании всегда pending, что бы ни пришло на вход.
	assert.Equal(t, domain.OrderStatusPending, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestOrderRepository_ListByUserWithTracking(t *testing.T) {
	orders := NewOrderRepository()
	shipments := NewShipmentRepository(orders, nil, nil)
	orders.BindShipments(shipments)

	first, err := orders.Create(domain.Order{UserID: "user-1", Origin: "Bogota"})
	require.NoError(t, err)
	second, err := orders.Create(domain.Order{UserID: "user-1", Origin: "Cali"})
	require.NoError(t, err)
	_, err = orders.Create(domain.Order{UserID: "user-2"})
	require.NoError(t, err)

	_, err = shipments.Create(domain.Shipment{
		OrderID:        first.ID,
		CarrierID:      "carrier-1",
		Status:         domain.ShipmentStatusPending,
		TrackingNumber: "COOAAAA0001",
	})
	require.NoError(t, err)

	result, err := orders.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	// Старые заказы первыми.
	assert.False(t, result[0].CreatedAt.After(result[1].CreatedAt))

	byID := map[string]domain.OrderWithTracking{}
	for _, o := range result {
		byID[o.ID] = o
	}
	assert.Equal(t, "COOAAAA0001", byID[first.ID].TrackingNumber)
	assert.Empty(t, byID[second.ID].TrackingNumber)
}

func TestOrderRepository_UpdateStatusAndDelete(t *testing.T) {
	repo := NewOrderRepository()
	created, err := repo.Create(domain.Order{UserID: "user-1"})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(created.ID, domain.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, updated.Status)

	removed, err := repo.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.Get(created.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}
