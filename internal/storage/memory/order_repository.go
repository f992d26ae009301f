package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// OrderRepository — простая in-memory реализация domain.OrderRepository.
type OrderRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Order

	// shipments нужен только для трек-номеров в ListByUser; привязывается
	// после создания, чтобы разорвать цикл инициализации с репозиторием
	// отправлений.
	shipments domain.ShipmentRepository
}

// NewOrderRepository возвращает in-memory репозиторий заказов
// для локальной разработки и тестов.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{items: make(map[string]domain.Order)}
}

// BindShipments привязывает репозиторий отправлений для ListByUser.
func (r *OrderRepository) BindShipments(shipments domain.ShipmentRepository) {
	r.shipments = shipments
}

func (r *OrderRepository) Create(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	order.ID = uuid.NewString()
	order.Status = domain.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now

	r.items[order.ID] = order
	return order, nil
}

func (r *OrderRepository) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *OrderRepository) List() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *OrderRepository) ListByUser(userID string) ([]domain.OrderWithTracking, error) {
	r.mu.RLock()
	orders := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	r.mu.RUnlock()

	// Старые заказы первыми, как в SQL-выборке.
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	result := make([]domain.OrderWithTracking, 0, len(orders))
	for _, order := range orders {
		item := domain.OrderWithTracking{Order: order}
		if r.shipments != nil {
			if shipments, err := r.shipments.ListByOrder(order.ID); err == nil && len(shipments) > 0 {
				item.TrackingNumber = shipments[0].TrackingNumber
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *OrderRepository) Update(id string, upd domain.OrderUpdate) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	if upd.Origin != nil {
		order.Origin = *upd.Origin
	}
	if upd.Destination != nil {
		order.Destination = *upd.Destination
	}
	if upd.Dimensions != nil {
		order.Dimensions = *upd.Dimensions
	}
	order.UpdatedAt = time.Now().UTC()

	r.items[id] = order
	return order, nil
}

func (r *OrderRepository) UpdateStatus(id string, status domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	r.items[id] = order
	return order, nil
}

func (r *OrderRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
