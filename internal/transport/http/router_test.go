package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/auth"
	cachememory "github.com/vladislavdragonenkov/logitrack/internal/cache/memory"
	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/service/carrier"
	"github.com/vladislavdragonenkov/logitrack/internal/service/order"
	"github.com/vladislavdragonenkov/logitrack/internal/service/route"
	"github.com/vladislavdragonenkov/logitrack/internal/service/shipment"
	"github.com/vladislavdragonenkov/logitrack/internal/service/user"
	"github.com/vladislavdragonenkov/logitrack/internal/storage/memory"
)

type testAPI struct {
	router *gin.Engine
	tokens *auth.TokenService

	orders    *order.Service
	carriers  *carrier.Service
	routes    *route.Service
	shipments *shipment.Service
	users     *user.Service
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", time.Minute)
	require.NoError(t, err)

	userRepo := memory.NewUserRepository()
	orderRepo := memory.NewOrderRepository()
	routeRepo := memory.NewRouteRepository()
	carrierRepo := memory.NewCarrierRepository(routeRepo)
	shipmentRepo := memory.NewShipmentRepository(orderRepo, carrierRepo, routeRepo)
	orderRepo.BindShipments(shipmentRepo)

	cache := cachememory.NewCache()
	tracking := shipment.NewTrackingCache(shipmentRepo, cache, time.Minute, nil, nil)

	api := &testAPI{
		tokens:    tokens,
		users:     user.NewService(userRepo, tokens, nil),
		orders:    order.NewService(orderRepo, nil, nil),
		carriers:  carrier.NewService(carrierRepo),
		routes:    route.NewService(routeRepo),
		shipments: shipment.NewService(shipmentRepo, tracking, nil, nil),
	}

	api.router = NewRouter(Handlers{
		Users:     NewUserHandler(api.users, nil),
		Orders:    NewOrderHandler(api.orders, nil),
		Carriers:  NewCarrierHandler(api.carriers, nil),
		Routes:    NewRouteHandler(api.routes, nil),
		Shipments: NewShipmentHandler(api.shipments, nil),
	}, tokens, nil)

	return api
}

func (a *testAPI) tokenFor(t *testing.T, role domain.UserRole) string {
	t.Helper()
	token, err := a.tokens.Issue(domain.Claims{UserID: "user-" + string(role), Role: role})
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "ada@example.com",
		"password": "s3cret",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	// Роль из тела игнорируется при публичной регистрации.
	assert.Equal(t, domain.RoleCustomer, created.Role)

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, created.ID, login.User.ID)
}

func TestRouter_Login_BadCredentials(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ghost@example.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/shipments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/shipments", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ShipmentCRUDRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	customer := api.tokenFor(t, domain.RoleCustomer)

	rec := api.do(t, http.MethodPost, "/api/shipments", customer, gin.H{
		"orderId":   "o1",
		"carrierId": "c1",
		"status":    "pending",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ShipmentLifecycle(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokenFor(t, domain.RoleAdmin)

	rec := api.do(t, http.MethodPost, "/api/shipments", admin, gin.H{
		"orderId":        "order-1",
		"carrierId":      "carrier-1",
		"status":         "pending",
		"trackingNumber": "COOAB123450",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Shipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Поиск по трек-номеру доступен любому аутентифицированному.
	customer := api.tokenFor(t, domain.RoleCustomer)
	rec = api.do(t, http.MethodGet, "/api/shipments/tracking/COOAB123450", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Курьер может менять статус.
	courier := api.tokenFor(t, domain.RoleCourrier)
	rec = api.do(t, http.MethodPatch, "/api/shipments/status/"+created.ID, courier, gin.H{
		"status": "in_transit",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Shipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, domain.ShipmentStatusInTransit, updated.Status)

	// Следующее чтение по трек-номеру видит новый статус, не кэшированный.
	rec = api.do(t, http.MethodGet, "/api/shipments/tracking/COOAB123450", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view domain.TrackingView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, domain.ShipmentStatusInTransit, view.Status)

	rec = api.do(t, http.MethodDelete, "/api/shipments/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/shipments/tracking/COOAB123450", customer, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ShipmentValidationStatus(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokenFor(t, domain.RoleAdmin)

	rec := api.do(t, http.MethodPost, "/api/shipments", admin, gin.H{
		"orderId":   "order-1",
		"carrierId": "carrier-1",
		"status":    "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ShipmentDuplicateTrackingConflict(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokenFor(t, domain.RoleAdmin)

	payload := gin.H{
		"orderId":        "order-1",
		"carrierId":      "carrier-1",
		"status":         "pending",
		"trackingNumber": "COOAB123450",
	}
	rec := api.do(t, http.MethodPost, "/api/shipments", admin, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/shipments", admin, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_OrderLockedConflict(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokenFor(t, domain.RoleAdmin)

	rec := api.do(t, http.MethodPost, "/api/orders", admin, gin.H{
		"userId": "user-1",
		"origin": "Bogota",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = api.do(t, http.MethodPatch, "/api/orders/status/"+created.ID, admin, gin.H{
		"orderStatus": "accepted",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/orders/"+created.ID, admin, gin.H{
		"origin": "Cali",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_OrderCreateUsesTokenIdentity(t *testing.T) {
	api := newTestAPI(t)
	customer := api.tokenFor(t, domain.RoleCustomer)

	// userId из тела подменяется идентичностью из токена.
	rec := api.do(t, http.MethodPost, "/api/orders", customer, gin.H{
		"userId": "someone-else",
		"origin": "Bogota",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "user-customer", created.UserID)
}

func TestRouter_UserSelfAccess(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "ada@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	selfToken, err := api.tokens.Issue(domain.Claims{UserID: created.ID, Role: domain.RoleCustomer})
	require.NoError(t, err)
	otherToken := api.tokenFor(t, domain.RoleCustomer)

	rec = api.do(t, http.MethodGet, "/api/users/"+created.ID, selfToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Чужой профиль не-администратору недоступен.
	rec = api.do(t, http.MethodGet, "/api/users/"+created.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Список пользователей только для администратора.
	rec = api.do(t, http.MethodGet, "/api/users", selfToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.do(t, http.MethodGet, "/api/users", api.tokenFor(t, domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RoutesAndCarriers(t *testing.T) {
	api := newTestAPI(t)
	admin := api.tokenFor(t, domain.RoleAdmin)

	rec := api.do(t, http.MethodPost, "/api/routes", admin, gin.H{
		"name":        "BOG-MED",
		"origin":      "Bogota",
		"destination": "Medellin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var createdRoute domain.Route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createdRoute))

	rec = api.do(t, http.MethodPost, "/api/carriers", admin, gin.H{
		"userId":    "user-1",
		"maxWeight": 120.5,
		"maxItems":  10,
		"routeId":   createdRoute.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Список перевозчиков отдаёт название маршрута.
	rec = api.do(t, http.MethodGet, "/api/carriers", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var carriers []domain.CarrierWithRoute
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &carriers))
	require.Len(t, carriers, 1)
	assert.Equal(t, "BOG-MED", carriers[0].RouteName)

	// Пустое название маршрута — ошибка валидации.
	rec = api.do(t, http.MethodPost, "/api/routes", admin, gin.H{"name": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
