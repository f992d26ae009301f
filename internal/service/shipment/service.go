package shipment

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/messaging/kafka"
)

// Service реализует бизнес-правила отправлений поверх репозитория
// и координатора кэша: валидацию входа, явные not-found-проверки перед
// разрушающими операциями и инвалидацию кэша на каждой мутации.
type Service struct {
	repo      domain.ShipmentRepository
	tracking  *TrackingCache
	publisher domain.EventPublisher
	logger    *log.Entry
}

// CreateInput — данные для создания отправления.
// Пустой TrackingNumber заменяется сгенерированным.
type CreateInput struct {
	OrderID        string                `json:"orderId"`
	CarrierID      string                `json:"carrierId"`
	Status         domain.ShipmentStatus `json:"status"`
	TrackingNumber string                `json:"trackingNumber"`
}

// NewService конструирует сервис с зависимостями.
// publisher может быть nil — события тогда не публикуются.
func NewService(
	repo domain.ShipmentRepository,
	tracking *TrackingCache,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "shipment-service")
	}
	return &Service{
		repo:      repo,
		tracking:  tracking,
		publisher: publisher,
		logger:    logger,
	}
}

// Create валидирует вход и сохраняет отправление.
// Кэш не прогревается: он заполняется лениво при первом поиске.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Shipment, error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return domain.Shipment{}, domain.ErrOrderIDRequired
	}
	if strings.TrimSpace(in.CarrierID) == "" {
		return domain.Shipment{}, domain.ErrCarrierIDRequired
	}
	if !in.Status.IsValid() {
		return domain.Shipment{}, domain.ErrShipmentStatusInvalid
	}
	if strings.TrimSpace(in.TrackingNumber) == "" {
		in.TrackingNumber = domain.GenerateTrackingNumber()
	}

	created, err := s.repo.Create(domain.Shipment{
		OrderID:        in.OrderID,
		CarrierID:      in.CarrierID,
		Status:         in.Status,
		TrackingNumber: in.TrackingNumber,
	})
	if err != nil {
		return domain.Shipment{}, err
	}

	s.publish(kafka.EventTypeShipmentCreated, created)
	return created, nil
}

// Get возвращает отправление по идентификатору.
func (s *Service) Get(ctx context.Context, id string) (domain.Shipment, error) {
	return s.repo.Get(id)
}

// List возвращает все отправления, новые первыми.
func (s *Service) List(ctx context.Context) ([]domain.Shipment, error) {
	return s.repo.List()
}

// GetByOrder возвращает отправления заказа. Списки по заказу не кэшируются.
func (s *Service) GetByOrder(ctx context.Context, orderID string) ([]domain.Shipment, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.ErrOrderIDRequired
	}
	return s.repo.ListByOrder(orderID)
}

// GetByTracking полностью делегирует поиск координатору кэша.
func (s *Service) GetByTracking(ctx context.Context, trackingNumber string) (domain.TrackingView, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return domain.TrackingView{}, domain.ErrTrackingNumberRequired
	}
	return s.tracking.Lookup(ctx, trackingNumber)
}

// Update применяет частичное обновление. Если меняется сам трек-номер,
// инвалидируются оба ключа: запись под старым номером иначе никогда не
// обновилась бы естественными чтениями по новому номеру, а читатель со
// старым номером должен увидеть пустой результат, не устаревший.
func (s *Service) Update(ctx context.Context, id string, upd domain.ShipmentUpdate) (domain.Shipment, error) {
	if upd.Status != nil && !upd.Status.IsValid() {
		return domain.Shipment{}, domain.ErrShipmentStatusInvalid
	}
	if upd.TrackingNumber != nil && strings.TrimSpace(*upd.TrackingNumber) == "" {
		return domain.Shipment{}, domain.ErrTrackingNumberRequired
	}

	current, err := s.repo.Get(id)
	if err != nil {
		return domain.Shipment{}, err
	}

	updated, err := s.repo.Update(id, upd)
	if err != nil {
		return domain.Shipment{}, err
	}

	s.invalidate(ctx, current.TrackingNumber)
	if updated.TrackingNumber != current.TrackingNumber {
		s.invalidate(ctx, updated.TrackingNumber)
	}

	return updated, nil
}

// UpdateStatus проверяет статус по перечню до любого обращения к базе
// или кэшу, затем выставляет его и инвалидирует ключ трекинга.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.ShipmentStatus) (domain.Shipment, error) {
	if !status.IsValid() {
		return domain.Shipment{}, domain.ErrShipmentStatusInvalid
	}

	// Текущая запись нужна ради трек-номера до мутации.
	current, err := s.repo.Get(id)
	if err != nil {
		return domain.Shipment{}, err
	}

	updated, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return domain.Shipment{}, err
	}

	s.invalidate(ctx, current.TrackingNumber)
	s.publish(kafka.EventTypeShipmentStatusChanged, updated)

	return updated, nil
}

// Delete читает запись ради трек-номера, удаляет её и инвалидирует кэш.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.Get(id)
	if err != nil {
		return err
	}

	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrShipmentNotFound
	}

	s.invalidate(ctx, current.TrackingNumber)
	s.publish(kafka.EventTypeShipmentDeleted, current)

	return nil
}

// invalidate удаляет ключ кэша. Мутация хранилища уже прошла, поэтому
// отказ кэша не превращается в ошибку для клиента — но обязан попасть
// в лог: пропущенная инвалидация означает риск устаревшего чтения.
func (s *Service) invalidate(ctx context.Context, trackingNumber string) {
	if err := s.tracking.Invalidate(ctx, trackingNumber); err != nil {
		s.logger.WithError(err).WithField("tracking_number", trackingNumber).
			Error("cache invalidation failed after store mutation")
	}
}

// publish отправляет событие best-effort; отказ брокера не влияет на ответ.
func (s *Service) publish(eventType kafka.EventType, sh domain.Shipment) {
	if s.publisher == nil {
		return
	}

	event := kafka.NewShipmentEvent(eventType, sh)
	if err := s.publisher.Publish(kafka.TopicShipmentEvents, sh.ID, event); err != nil {
		s.logger.WithError(err).WithField("event_type", string(eventType)).
			Warn("failed to publish shipment event")
	}
}
