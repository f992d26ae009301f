package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

func TestProducer_Publish(t *testing.T) {
	// Создаем mock producer
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	// Настраиваем ожидания
	mockProducer.ExpectSendMessageAndSucceed()

	// Создаем тестовое событие
	event := NewShipmentEvent(EventTypeShipmentCreated, domain.Shipment{
		ID:             "ship-1",
		OrderID:        "order-123",
		CarrierID:      "carrier-1",
		Status:         domain.ShipmentStatusPending,
		TrackingNumber: "COOAB12CD34",
	})

	// Публикуем событие
	err := producer.Publish(TopicShipmentEvents, "ship-1", event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Проверяем, что все ожидания выполнены
	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_Publish_Error(t *testing.T) {
	// Создаем mock producer с ошибкой
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	// Настраиваем ожидание ошибки
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := NewShipmentEvent(EventTypeShipmentDeleted, domain.Shipment{ID: "ship-1"})

	// Публикуем событие
	err := producer.Publish(TopicShipmentEvents, "ship-1", event)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewShipmentEvent(t *testing.T) {
	sh := domain.Shipment{
		ID:             "ship-1",
		OrderID:        "order-123",
		CarrierID:      "carrier-9",
		Status:         domain.ShipmentStatusInTransit,
		TrackingNumber: "COO12345678",
	}

	event := NewShipmentEvent(EventTypeShipmentStatusChanged, sh)

	if event.EventType != EventTypeShipmentStatusChanged {
		t.Errorf("expected event type %s, got %s", EventTypeShipmentStatusChanged, event.EventType)
	}

	if event.ShipmentID != sh.ID {
		t.Errorf("expected shipment id %s, got %s", sh.ID, event.ShipmentID)
	}

	if event.TrackingNumber != sh.TrackingNumber {
		t.Errorf("expected tracking number %s, got %s", sh.TrackingNumber, event.TrackingNumber)
	}

	if event.Status != string(domain.ShipmentStatusInTransit) {
		t.Errorf("expected status %s, got %s", domain.ShipmentStatusInTransit, event.Status)
	}

	// Проверяем, что timestamp установлен
	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}

	// Проверяем, что timestamp близок к текущему времени
	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}
}

func TestNewOrderEvent(t *testing.T) {
	o := domain.Order{
		ID:     "order-123",
		UserID: "user-1",
		Status: domain.OrderStatusAccepted,
	}

	event := NewOrderEvent(EventTypeOrderAccepted, o)

	if event.EventType != EventTypeOrderAccepted {
		t.Errorf("expected event type %s, got %s", EventTypeOrderAccepted, event.EventType)
	}

	if event.OrderID != o.ID {
		t.Errorf("expected order id %s, got %s", o.ID, event.OrderID)
	}

	if event.UserID != o.UserID {
		t.Errorf("expected user id %s, got %s", o.UserID, event.UserID)
	}

	if event.Status != string(domain.OrderStatusAccepted) {
		t.Errorf("expected status %s, got %s", domain.OrderStatusAccepted, event.Status)
	}

	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
}
