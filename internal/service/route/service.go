package route

import (
	"context"
	"strings"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// Service реализует бизнес-правила маршрутов.
type Service struct {
	repo domain.RouteRepository
}

// CreateInput — данные для создания маршрута.
type CreateInput struct {
	Name        string `json:"name"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// NewService конструирует сервис маршрутов.
func NewService(repo domain.RouteRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Route, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Route{}, domain.ErrRouteNameRequired
	}

	return s.repo.Create(domain.Route{
		Name:        in.Name,
		Origin:      in.Origin,
		Destination: in.Destination,
	})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Route, error) {
	return s.repo.Get(id)
}

func (s *Service) List(ctx context.Context) ([]domain.Route, error) {
	return s.repo.List()
}

func (s *Service) Update(ctx context.Context, id string, upd domain.RouteUpdate) (domain.Route, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return domain.Route{}, domain.ErrRouteNameRequired
	}
	return s.repo.Update(id, upd)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrRouteNotFound
	}
	return nil
}
