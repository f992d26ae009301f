package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ждёт подтверждения.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusAccepted — заказ принят; дальнейшее редактирование запрещено.
	OrderStatusAccepted OrderStatus = "accepted"
)

// IsValid проверяет принадлежность статуса к перечню.
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPending || s == OrderStatusAccepted
}

// Address — адрес доставки.
type Address struct {
	City       string `json:"city"`
	Country    string `json:"country"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
}

// Dimensions — габариты и вес груза.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// Order — заявка клиента на доставку груза.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Origin      string      `json:"origin"`
	Destination Address     `json:"destination"`
	Status      OrderStatus `json:"orderStatus"`
	Dimensions  Dimensions  `json:"dimensions"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OrderWithTracking — заказ вместе с трек-номером его отправления (если есть);
// используется в выборке заказов пользователя.
type OrderWithTracking struct {
	Order
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// OrderUpdate описывает частичное обновление заказа.
type OrderUpdate struct {
	Origin      *string     `json:"origin,omitempty"`
	Destination *Address    `json:"destination,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
}

// Editable сообщает, можно ли ещё менять заказ.
// Принятый заказ заморожен — это контракт с биллингом.
func (o *Order) Editable() bool {
	return o.Status != OrderStatusAccepted
}
