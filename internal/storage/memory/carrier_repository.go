package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// carrierRepositoryInMemory — простая in-memory реализация CarrierRepository.
type carrierRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Carrier

	routes domain.RouteRepository
}

// NewCarrierRepository возвращает in-memory репозиторий перевозчиков.
// Репозиторий маршрутов нужен только для названий маршрутов в List;
// допустимо передать nil.
func NewCarrierRepository(routes domain.RouteRepository) domain.CarrierRepository {
	return &carrierRepositoryInMemory{
		items:  make(map[string]domain.Carrier),
		routes: routes,
	}
}

func (r *carrierRepositoryInMemory) Create(carrier domain.Carrier) (domain.Carrier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	carrier.ID = uuid.NewString()
	carrier.CreatedAt = now
	carrier.UpdatedAt = now

	r.items[carrier.ID] = carrier
	return carrier, nil
}

func (r *carrierRepositoryInMemory) Get(id string) (domain.Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	carrier, ok := r.items[id]
	if !ok {
		return domain.Carrier{}, domain.ErrCarrierNotFound
	}
	return carrier, nil
}

func (r *carrierRepositoryInMemory) List() ([]domain.CarrierWithRoute, error) {
	r.mu.RLock()
	carriers := make([]domain.Carrier, 0, len(r.items))
	for _, carrier := range r.items {
		carriers = append(carriers, carrier)
	}
	r.mu.RUnlock()

	sort.Slice(carriers, func(i, j int) bool {
		if !carriers[i].CreatedAt.Equal(carriers[j].CreatedAt) {
			return carriers[i].CreatedAt.After(carriers[j].CreatedAt)
		}
		return carriers[i].ID > carriers[j].ID
	})

	result := make([]domain.CarrierWithRoute, 0, len(carriers))
	for _, carrier := range carriers {
		item := domain.CarrierWithRoute{Carrier: carrier}
		if r.routes != nil {
			if route, err := r.routes.Get(carrier.RouteID); err == nil {
				item.RouteName = route.Name
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *carrierRepositoryInMemory) Update(id string, upd domain.CarrierUpdate) (domain.Carrier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	carrier, ok := r.items[id]
	if !ok {
		return domain.Carrier{}, domain.ErrCarrierNotFound
	}

	if upd.MaxWeight != nil {
		carrier.MaxWeight = *upd.MaxWeight
	}
	if upd.MaxItems != nil {
		carrier.MaxItems = *upd.MaxItems
	}
	if upd.RouteID != nil {
		carrier.RouteID = *upd.RouteID
	}
	carrier.UpdatedAt = time.Now().UTC()

	r.items[id] = carrier
	return carrier, nil
}

func (r *carrierRepositoryInMemory) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ domain.CarrierRepository = (*carrierRepositoryInMemory)(nil)
