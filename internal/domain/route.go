package domain

import "time"

// Route — именованный маршрут доставки, к которому привязываются перевозчики.
type Route struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RouteUpdate описывает частичное обновление маршрута.
type RouteUpdate struct {
	Name        *string `json:"name,omitempty"`
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
}
