package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// shipmentRepositoryInMemory — простая in-memory реализация ShipmentRepository.
// Для трекинг-представления держит ссылки на остальные репозитории
// и «сшивает» данные так же, как это делает SQL-джойн.
type shipmentRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Shipment

	orders   domain.OrderRepository
	carriers domain.CarrierRepository
	routes   domain.RouteRepository
}

// NewShipmentRepository возвращает in-memory репозиторий для локальной
// разработки и тестов. Репозитории заказов/перевозчиков/маршрутов нужны
// только для FindByTracking; допустимо передать nil, тогда соответствующие
// поля представления останутся пустыми (аналог LEFT JOIN без совпадения).
func NewShipmentRepository(
	orders domain.OrderRepository,
	carriers domain.CarrierRepository,
	routes domain.RouteRepository,
) domain.ShipmentRepository {
	return &shipmentRepositoryInMemory{
		items:    make(map[string]domain.Shipment),
		orders:   orders,
		carriers: carriers,
		routes:   routes,
	}
}

func (r *shipmentRepositoryInMemory) Create(shipment domain.Shipment) (domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	shipment.ID = uuid.NewString()
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	for _, existing := range r.items {
		if existing.TrackingNumber == shipment.TrackingNumber {
			return domain.Shipment{}, &domain.StoreError{
				Kind:  domain.StoreErrUnique,
				Field: "tracking_number",
				Err:   errors.New("tracking number already exists"),
			}
		}
	}

	r.items[shipment.ID] = shipment
	return shipment, nil
}

func (r *shipmentRepositoryInMemory) Get(id string) (domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shipment, ok := r.items[id]
	if !ok {
		return domain.Shipment{}, domain.ErrShipmentNotFound
	}
	return shipment, nil
}

func (r *shipmentRepositoryInMemory) List() ([]domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Shipment, 0, len(r.items))
	for _, shipment := range r.items {
		result = append(result, shipment)
	}
	sortShipmentsDesc(result)
	return result, nil
}

func (r *shipmentRepositoryInMemory) ListByOrder(orderID string) ([]domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Shipment, 0)
	for _, shipment := range r.items {
		if shipment.OrderID == orderID {
			result = append(result, shipment)
		}
	}
	sortShipmentsDesc(result)
	return result, nil
}

func (r *shipmentRepositoryInMemory) FindByTracking(trackingNumber string) (domain.TrackingView, error) {
	r.mu.RLock()
	var found *domain.Shipment
	for _, shipment := range r.items {
		if shipment.TrackingNumber == trackingNumber {
			sh := shipment
			found = &sh
			break
		}
	}
	r.mu.RUnlock()

	if found == nil {
		return domain.TrackingView{}, domain.ErrTrackingNotFound
	}

	view := domain.TrackingView{Shipment: *found}

	if r.orders != nil {
		if order, err := r.orders.Get(found.OrderID); err == nil {
			view.Origin = order.Origin
			view.Destination = order.Destination
			view.Dimensions = order.Dimensions
		}
	}
	if r.carriers != nil {
		if carrier, err := r.carriers.Get(found.CarrierID); err == nil && r.routes != nil {
			if route, err := r.routes.Get(carrier.RouteID); err == nil {
				view.RouteName = route.Name
			}
		}
	}

	return view, nil
}

func (r *shipmentRepositoryInMemory) Update(id string, upd domain.ShipmentUpdate) (domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shipment, ok := r.items[id]
	if !ok {
		return domain.Shipment{}, domain.ErrShipmentNotFound
	}

	if upd.CarrierID != nil {
		shipment.CarrierID = *upd.CarrierID
	}
	if upd.Status != nil {
		shipment.Status = *upd.Status
	}
	if upd.TrackingNumber != nil {
		shipment.TrackingNumber = *upd.TrackingNumber
	}
	shipment.UpdatedAt = time.Now().UTC()

	r.items[id] = shipment
	return shipment, nil
}

func (r *shipmentRepositoryInMemory) UpdateStatus(id string, status domain.ShipmentStatus) (domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shipment, ok := r.items[id]
	if !ok {
		return domain.Shipment{}, domain.ErrShipmentNotFound
	}

	shipment.Status = status
	shipment.UpdatedAt = time.Now().UTC()
	r.items[id] = shipment
	return shipment, nil
}

func (r *shipmentRepositoryInMemory) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func sortShipmentsDesc(shipments []domain.Shipment) {
	sort.Slice(shipments, func(i, j int) bool {
		if !shipments[i].CreatedAt.Equal(shipments[j].CreatedAt) {
			return shipments[i].CreatedAt.After(shipments[j].CreatedAt)
		}
		return shipments[i].ID > shipments[j].ID
	})
}

var _ domain.ShipmentRepository = (*shipmentRepositoryInMemory)(nil)
