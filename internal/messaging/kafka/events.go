package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// Shipment события
	EventTypeShipmentCreated       EventType = "shipment.created"
	EventTypeShipmentStatusChanged EventType = "shipment.status_changed"
	EventTypeShipmentDeleted       EventType = "shipment.deleted"

	// Order события
	EventTypeOrderCreated  EventType = "order.created"
	EventTypeOrderAccepted EventType = "order.accepted"
	EventTypeOrderDeleted  EventType = "order.deleted"
)

// Topics для Kafka
const (
	TopicShipmentEvents = "logitrack.shipment.events"
	TopicOrderEvents    = "logitrack.order.events"
)

// ShipmentEvent представляет событие отправления
type ShipmentEvent struct {
	EventType      EventType `json:"event_type"`
	ShipmentID     string    `json:"shipment_id"`
	OrderID        string    `json:"order_id"`
	CarrierID      string    `json:"carrier_id"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"tracking_number"`
	Timestamp      time.Time `json:"timestamp"`
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType EventType `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewShipmentEvent создает новое событие отправления
func NewShipmentEvent(eventType EventType, sh domain.Shipment) *ShipmentEvent {
	return &ShipmentEvent{
		EventType:      eventType,
		ShipmentID:     sh.ID,
		OrderID:        sh.OrderID,
		CarrierID:      sh.CarrierID,
		Status:         string(sh.Status),
		TrackingNumber: sh.TrackingNumber,
		Timestamp:      time.Now(),
	}
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, o domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Timestamp: time.Now(),
	}
}
