package domain

import (
	"crypto/rand"
	"math/big"
	"time"
)

// ShipmentStatus описывает жизненный цикл отправления.
type ShipmentStatus string

const (
	// ShipmentStatusPending — отправление создано, но перевозчик его ещё не забрал.
	ShipmentStatusPending ShipmentStatus = "pending"
	// ShipmentStatusInTransit — отправление в пути.
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	// ShipmentStatusDelivered — отправление доставлено получателю.
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// IsValid проверяет принадлежность статуса к перечню.
// Переходы между статусами намеренно не ограничены: отправление можно
// скорректировать в любой момент, в отличие от заказа (см. Order).
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// Shipment связывает заказ с перевозчиком и несёт трек-номер,
// по которому клиент отслеживает доставку.
type Shipment struct {
	ID             string         `json:"id"`
	OrderID        string         `json:"orderId"`
	CarrierID      string         `json:"carrierId"`
	Status         ShipmentStatus `json:"status"`
	TrackingNumber string         `json:"trackingNumber"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ShipmentUpdate описывает частичное обновление отправления:
// перезаписываются только заполненные поля.
type ShipmentUpdate struct {
	CarrierID      *string         `json:"carrierId,omitempty"`
	Status         *ShipmentStatus `json:"status,omitempty"`
	TrackingNumber *string         `json:"trackingNumber,omitempty"`
}

// TrackingView — денормализованное представление для поиска по трек-номеру:
// отправление плюс пункт назначения, габариты и происхождение заказа
// и название маршрута перевозчика.
type TrackingView struct {
	Shipment
	Origin      string     `json:"origin"`
	Destination Address    `json:"destination"`
	Dimensions  Dimensions `json:"dimensions"`
	RouteName   string     `json:"routeName"`
}

const (
	trackingPrefix   = "COO"
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingSuffix   = 8
)

// GenerateTrackingNumber выдаёт трек-номер вида COO + 8 символов [A-Z0-9].
func GenerateTrackingNumber() string {
	buf := make([]byte, trackingSuffix)
	max := big.NewInt(int64(len(trackingAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand на практике не отказывает; fallback детерминирован.
			buf[i] = trackingAlphabet[0]
			continue
		}
		buf[i] = trackingAlphabet[n.Int64()]
	}
	return trackingPrefix + string(buf)
}
