package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// routeRepositoryInMemory — простая in-memory реализация RouteRepository.
type routeRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Route
}

// NewRouteRepository возвращает in-memory репозиторий маршрутов.
func NewRouteRepository() domain.RouteRepository {
	return &routeRepositoryInMemory{items: make(map[string]domain.Route)}
}

func (r *routeRepositoryInMemory) Create(route domain.Route) (domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	route.ID = uuid.NewString()
	route.CreatedAt = now
	route.UpdatedAt = now

	r.items[route.ID] = route
	return route, nil
}

func (r *routeRepositoryInMemory) Get(id string) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.items[id]
	if !ok {
		return domain.Route{}, domain.ErrRouteNotFound
	}
	return route, nil
}

func (r *routeRepositoryInMemory) List() ([]domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Route, 0, len(r.items))
	for _, route := range r.items {
		result = append(result, route)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *routeRepositoryInMemory) Update(id string, upd domain.RouteUpdate) (domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, ok := r.items[id]
	if !ok {
		return domain.Route{}, domain.ErrRouteNotFound
	}

	if upd.Name != nil {
		route.Name = *upd.Name
	}
	if upd.Origin != nil {
		route.Origin = *upd.Origin
	}
	if upd.Destination != nil {
		route.Destination = *upd.Destination
	}
	route.UpdatedAt = time.Now().UTC()

	r.items[id] = route
	return route, nil
}

func (r *routeRepositoryInMemory) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ domain.RouteRepository = (*routeRepositoryInMemory)(nil)
