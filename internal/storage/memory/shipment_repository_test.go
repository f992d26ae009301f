package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

func seedShipment(t *testing.T, repo domain.ShipmentRepository, orderID, trackingNumber string) domain.Shipment {
	t.Helper()
	created, err := repo.Create(domain.Shipment{
		OrderID:        orderID,
		CarrierID:      "carrier-1",
		Status:         domain.ShipmentStatusPending,
		TrackingNumber: trackingNumber,
	})
	require.NoError(t, err)
	return created
}

func TestShipmentRepository_CreateAssignsIdentity(t *testing.T) {
	repo := NewShipmentRepository(nil, nil, nil)

	created := seedShipment(t, repo, "order-1", "COOAAAA0001")
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestShipmentRepository_UniqueTrackingNumber(t *testing.T) {
	repo := NewShipmentRepository(nil, nil, nil)
	seedShipment(t, repo, "order-1", "COOAAAA0001")

	_, err := repo.Create(domain.Shipment{
		OrderID:        "order-2",
		CarrierID:      "carrier-2",
		Status:         domain.ShipmentStatusPending,
		TrackingNumber: "COOAAAA0001",
	})
	require.Error(t, err)

	se, ok := domain.AsStoreError(err)
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrUnique, se.Kind)
	assert.Equal(t, "tracking_number", se.Field)
}

func TestShipmentRepository_FindByTrackingJoins(t *testing.T) {
	orders := NewOrderRepository()
	routes := NewRouteRepository()
	carriers := NewCarrierRepository(routes)
	repo := NewShipmentRepository(orders, carriers, routes)

	createdOrder, err := orders.Create(domain.Order{
		UserID: "user-1",
		Origin: "Bogota",
		Destination: domain.Address{
			City:    "Medellin",
			Country: "CO",
		},
		Dimensions: domain.Dimensions{Weight: 3},
	})
	require.NoError(t, err)

	createdRoute, err := routes.Create(domain.Route{Name: "BOG-MED"})
	require.NoError(t, err)
	createdCarrier, err := carriers.Create(domain.Carrier{UserID: "courier-1", RouteID: createdRoute.ID})
	require.NoError(t, err)

	created, err := repo.Create(domain.Shipment{
		OrderID:        createdOrder.ID,
		CarrierID:      createdCarrier.ID,
		Status:         domain.ShipmentStatusPending,
		TrackingNumber: "COOAAAA0001",
	})
	require.NoError(t, err)

	view, err := repo.FindByTracking("COOAAAA0001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, "Bogota", view.Origin)
	assert.Equal(t, "Medellin", view.Destination.City)
	assert.Equal(t, 3.0, view.Dimensions.Weight)
	assert.Equal(t, "BOG-MED", view.RouteName)
}

func TestShipmentRepository_FindByTrackingMissingJoinTargets(t *testing.T) {
	// Аналог LEFT JOIN без совпадений: поля представления остаются пустыми.
	repo := NewShipmentRepository(nil, nil, nil)
	seedShipment(t, repo, "order-1", "COOAAAA0001")

	view, err := repo.FindByTracking("COOAAAA0001")
	require.NoError(t, err)
	assert.Empty(t, view.Origin)
	assert.Empty(t, view.RouteName)
}

func TestShipmentRepository_FindByTrackingNotFound(t *testing.T) {
	repo := NewShipmentRepository(nil, nil, nil)

	_, err := repo.FindByTracking("COOZZZZ9999")
	require.ErrorIs(t, err, domain.ErrTrackingNotFound)
}

func TestShipmentRepository_UpdatePartialMerge(t *testing.T) {
	repo := NewShipmentRepository(nil, nil, nil)
	created := seedShipment(t, repo, "order-1", "COOAAAA0001")

	status := domain.ShipmentStatusInTransit
	updated, err := repo.Update(created.ID, domain.ShipmentUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.ShipmentStatusInTransit, updated.Status)
	assert.Equal(t, created.CarrierID, updated.CarrierID)
	assert.Equal(t, created.TrackingNumber, updated.TrackingNumber)

	_, err = repo.Update("missing", domain.ShipmentUpdate{})
	require.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

func TestShipmentRepository_ListByOrderNewestFirst(t *testing.T) {
	repo := NewShipmentRepository(nil, nil, nil)
	first := seedShipment(t, repo, "order-1", "COOAAAA0001")
	second := seedShipment(t, repo, "order-1", "COOAAAA0002")
	seedShipment(t, repo, "order-2", "COOAAAA0003")

	shipments, err := repo.ListByOrder("order-1")
	require.NoError(t, err)
	require.Len(t, shipments, 2)
	// Новые первыми.
	ids := []string{shipments[0].ID, shipments[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.False(t, shipments[0].CreatedAt.Before(shipments[1].CreatedAt))
}

func TestShipmentRepository_Delete(t *testing.T) {
	repo := NewShipmentRepository(nil, nil, nil)
	created := seedShipment(t, repo, "order-1", "COOAAAA0001")

	removed, err := repo.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
