package carrier

import (
	"context"
	"strings"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// Service реализует бизнес-правила перевозчиков.
// Ссылочную целостность (user_id, route_id) проверяет хранилище;
// нарушение внешнего ключа приходит как StoreError и транспорт
// превращает его в ошибку клиента.
type Service struct {
	repo domain.CarrierRepository
}

// CreateInput — данные для создания перевозчика.
type CreateInput struct {
	UserID    string  `json:"userId"`
	MaxWeight float64 `json:"maxWeight"`
	MaxItems  int     `json:"maxItems"`
	RouteID   string  `json:"routeId"`
}

// NewService конструирует сервис перевозчиков.
func NewService(repo domain.CarrierRepository) *Service {
	return &Service{repo: repo}
}

// Create валидирует вход и сохраняет перевозчика.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Carrier, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return domain.Carrier{}, domain.ErrUserIDRequired
	}
	if strings.TrimSpace(in.RouteID) == "" {
		return domain.Carrier{}, domain.ErrRouteIDRequired
	}

	return s.repo.Create(domain.Carrier{
		UserID:    in.UserID,
		MaxWeight: in.MaxWeight,
		MaxItems:  in.MaxItems,
		RouteID:   in.RouteID,
	})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Carrier, error) {
	return s.repo.Get(id)
}

// List возвращает перевозчиков вместе с названиями их маршрутов.
func (s *Service) List(ctx context.Context) ([]domain.CarrierWithRoute, error) {
	return s.repo.List()
}

// Update применяет частичное обновление.
func (s *Service) Update(ctx context.Context, id string, upd domain.CarrierUpdate) (domain.Carrier, error) {
	if upd.RouteID != nil && strings.TrimSpace(*upd.RouteID) == "" {
		return domain.Carrier{}, domain.ErrRouteIDRequired
	}
	return s.repo.Update(id, upd)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrCarrierNotFound
	}
	return nil
}
