package carrier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/storage/memory"
)

func newFixture(t *testing.T) (*Service, domain.Route) {
	t.Helper()

	routes := memory.NewRouteRepository()
	createdRoute, err := routes.Create(domain.Route{Name: "BOG-MED"})
	require.NoError(t, err)

	return NewService(memory.NewCarrierRepository(routes)), createdRoute
}

func TestService_Create_Validation(t *testing.T) {
	svc, createdRoute := newFixture(t)

	_, err := svc.Create(context.Background(), CreateInput{RouteID: createdRoute.ID})
	require.ErrorIs(t, err, domain.ErrUserIDRequired)

	_, err = svc.Create(context.Background(), CreateInput{UserID: "user-1"})
	require.ErrorIs(t, err, domain.ErrRouteIDRequired)
}

func TestService_CreateAndListWithRouteName(t *testing.T) {
	svc, createdRoute := newFixture(t)

	created, err := svc.Create(context.Background(), CreateInput{
		UserID:    "user-1",
		MaxWeight: 120,
		MaxItems:  15,
		RouteID:   createdRoute.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	carriers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, carriers, 1)
	assert.Equal(t, "BOG-MED", carriers[0].RouteName)
}

func TestService_Update(t *testing.T) {
	svc, createdRoute := newFixture(t)
	created, err := svc.Create(context.Background(), CreateInput{
		UserID:  "user-1",
		RouteID: createdRoute.ID,
	})
	require.NoError(t, err)

	weight := 200.0
	updated, err := svc.Update(context.Background(), created.ID, domain.CarrierUpdate{MaxWeight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 200.0, updated.MaxWeight)
	assert.Equal(t, createdRoute.ID, updated.RouteID)

	empty := " "
	_, err = svc.Update(context.Background(), created.ID, domain.CarrierUpdate{RouteID: &empty})
	require.ErrorIs(t, err, domain.ErrRouteIDRequired)
}

func TestService_Delete(t *testing.T) {
	svc, createdRoute := newFixture(t)
	created, err := svc.Create(context.Background(), CreateInput{
		UserID:  "user-1",
		RouteID: createdRoute.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), domain.ErrCarrierNotFound)
}
