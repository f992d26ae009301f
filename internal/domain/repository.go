package domain

// ShipmentRepository описывает требования к хранилищу отправлений.
// Репозиторий ничего не знает о кэше: инвалидацией управляет сервисный слой.
type ShipmentRepository interface {
	// Create сохраняет новое отправление и возвращает запись с проставленными
	// идентификатором и временными метками.
	Create(shipment Shipment) (Shipment, error)
	// Get возвращает отправление или ErrShipmentNotFound.
	Get(id string) (Shipment, error)
	// List возвращает все отправления, новые первыми.
	List() ([]Shipment, error)
	// ListByOrder возвращает отправления заказа, новые первыми.
	ListByOrder(orderID string) ([]Shipment, error)
	// FindByTracking возвращает сшитое представление по трек-номеру
	// или ErrTrackingNotFound.
	FindByTracking(trackingNumber string) (TrackingView, error)
	// Update применяет частичное обновление: перезаписываются только
	// заполненные поля. Возвращает обновлённую запись или ErrShipmentNotFound.
	Update(id string, upd ShipmentUpdate) (Shipment, error)
	// UpdateStatus выставляет статус и updated_at. Возвращает обновлённую
	// запись или ErrShipmentNotFound.
	UpdateStatus(id string, status ShipmentStatus) (Shipment, error)
	// Delete удаляет отправление и сообщает, была ли удалена строка.
	Delete(id string) (bool, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	Create(order Order) (Order, error)
	Get(id string) (Order, error)
	List() ([]Order, error)
	// ListByUser возвращает заказы пользователя вместе с трек-номерами
	// их отправлений, старые первыми.
	ListByUser(userID string) ([]OrderWithTracking, error)
	Update(id string, upd OrderUpdate) (Order, error)
	UpdateStatus(id string, status OrderStatus) (Order, error)
	Delete(id string) (bool, error)
}

// CarrierRepository описывает требования к хранилищу перевозчиков.
type CarrierRepository interface {
	Create(carrier Carrier) (Carrier, error)
	Get(id string) (Carrier, error)
	// List возвращает перевозчиков вместе с названиями маршрутов.
	List() ([]CarrierWithRoute, error)
	Update(id string, upd CarrierUpdate) (Carrier, error)
	Delete(id string) (bool, error)
}

// RouteRepository описывает требования к хранилищу маршрутов.
type RouteRepository interface {
	Create(route Route) (Route, error)
	Get(id string) (Route, error)
	List() ([]Route, error)
	Update(id string, upd RouteUpdate) (Route, error)
	Delete(id string) (bool, error)
}

// UserRepository описывает требования к хранилищу пользователей.
type UserRepository interface {
	Create(user User) (User, error)
	Get(id string) (User, error)
	// GetByEmail нужен для входа; возвращает ErrUserNotFound, если email не занят.
	GetByEmail(email string) (User, error)
	List() ([]User, error)
	Update(user User) (User, error)
	Delete(id string) (bool, error)
}
