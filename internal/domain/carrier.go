package domain

import "time"

// Carrier — перевозчик: пользователь-курьер с ограничениями по весу
// и количеству мест, закреплённый за маршрутом.
type Carrier struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MaxWeight float64   `json:"maxWeight"`
	MaxItems  int       `json:"maxItems"`
	RouteID   string    `json:"routeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CarrierWithRoute — перевозчик вместе с названием маршрута для списков.
type CarrierWithRoute struct {
	Carrier
	RouteName string `json:"routeName"`
}

// CarrierUpdate описывает частичное обновление перевозчика.
type CarrierUpdate struct {
	MaxWeight *float64 `json:"maxWeight,omitempty"`
	MaxItems  *int     `json:"maxItems,omitempty"`
	RouteID   *string  `json:"routeId,omitempty"`
}
