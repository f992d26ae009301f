package order

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/messaging/kafka"
)

// Service реализует бизнес-правила заказов. Ключевой инвариант:
// принятый заказ (accepted) заморожен и больше не редактируется.
type Service struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	logger    *log.Entry
}

// CreateInput — данные для создания заказа.
type CreateInput struct {
	UserID      string            `json:"userId"`
	Origin      string            `json:"origin"`
	Destination domain.Address    `json:"destination"`
	Dimensions  domain.Dimensions `json:"dimensions"`
}

// NewService конструирует сервис заказов.
func NewService(repo domain.OrderRepository, publisher domain.EventPublisher, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// Create сохраняет новый заказ. Статус всегда pending: принять заказ
// можно только отдельной операцией смены статуса.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return domain.Order{}, domain.ErrUserIDRequired
	}

	created, err := s.repo.Create(domain.Order{
		UserID:      in.UserID,
		Origin:      in.Origin,
		Destination: in.Destination,
		Status:      domain.OrderStatusPending,
		Dimensions:  in.Dimensions,
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.publish(kafka.EventTypeOrderCreated, created)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(id)
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List()
}

// ListByUser возвращает заказы пользователя с трек-номерами отправлений.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.OrderWithTracking, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.repo.ListByUser(userID)
}

// Update применяет частичное обновление. Принятый заказ не редактируется.
func (s *Service) Update(ctx context.Context, id string, upd domain.OrderUpdate) (domain.Order, error) {
	current, err := s.repo.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if !current.Editable() {
		return domain.Order{}, domain.ErrOrderLocked
	}

	return s.repo.Update(id, upd)
}

// UpdateStatus переводит заказ в новый статус. Обратный переход из
// accepted запрещён; повторное принятие уже принятого заказа безвредно.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.IsValid() {
		return domain.Order{}, domain.ErrOrderStatusInvalid
	}

	current, err := s.repo.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if current.Status == domain.OrderStatusAccepted && status != domain.OrderStatusAccepted {
		return domain.Order{}, domain.ErrOrderLocked
	}

	updated, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return domain.Order{}, err
	}

	if current.Status != domain.OrderStatusAccepted && status == domain.OrderStatusAccepted {
		s.publish(kafka.EventTypeOrderAccepted, updated)
	}

	return updated, nil
}

// Delete удаляет заказ. Принятый заказ удалить нельзя.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	if !current.Editable() {
		return domain.ErrOrderLocked
	}

	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrOrderNotFound
	}

	s.publish(kafka.EventTypeOrderDeleted, current)
	return nil
}

func (s *Service) publish(eventType kafka.EventType, o domain.Order) {
	if s.publisher == nil {
		return
	}
	event := kafka.NewOrderEvent(eventType, o)
	if err := s.publisher.Publish(kafka.TopicOrderEvents, o.ID, event); err != nil {
		s.logger.WithError(err).WithField("event_type", string(eventType)).
			Warn("failed to publish order event")
	}
}
