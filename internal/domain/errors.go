package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — базовая ошибка валидации входных данных; все конкретные
	// ошибки валидации оборачивают её, чтобы транспорт мог вернуть 400.
	ErrValidation = errors.New("validation failed")

	// Ошибка отсутствующего идентификатора заказа у отправления.
	ErrOrderIDRequired = fmt.Errorf("%w: order_id is required", ErrValidation)
	// Ошибка отсутствующего идентификатора перевозчика.
	ErrCarrierIDRequired = fmt.Errorf("%w: carrier_id is required", ErrValidation)
	// Ошибка пустого трек-номера.
	ErrTrackingNumberRequired = fmt.Errorf("%w: tracking_number is required", ErrValidation)
	// Ошибка статуса отправления вне допустимого перечня.
	ErrShipmentStatusInvalid = fmt.Errorf("%w: invalid shipment status", ErrValidation)
	// Ошибка статуса заказа вне допустимого перечня.
	ErrOrderStatusInvalid = fmt.Errorf("%w: invalid order status", ErrValidation)
	// Ошибка отсутствующего идентификатора пользователя.
	ErrUserIDRequired = fmt.Errorf("%w: user_id is required", ErrValidation)
	// Ошибка отсутствующего идентификатора маршрута у перевозчика.
	ErrRouteIDRequired = fmt.Errorf("%w: route_id is required", ErrValidation)
	// Ошибка пустого названия маршрута.
	ErrRouteNameRequired = fmt.Errorf("%w: route name is required", ErrValidation)
	// Ошибка отсутствующих учётных данных при регистрации/входе.
	ErrCredentialsRequired = fmt.Errorf("%w: email and password are required", ErrValidation)
	// Ошибка роли пользователя вне допустимого перечня.
	ErrUserRoleInvalid = fmt.Errorf("%w: invalid user role", ErrValidation)

	// ErrShipmentNotFound возвращается, если отправление не найдено в репозитории.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCarrierNotFound возвращается, если перевозчик не найден.
	ErrCarrierNotFound = errors.New("carrier not found")
	// ErrRouteNotFound возвращается, если маршрут не найден.
	ErrRouteNotFound = errors.New("route not found")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrTrackingNotFound возвращается, если по трек-номеру ничего не найдено.
	ErrTrackingNotFound = errors.New("tracking number not found")

	// ErrOrderLocked — заказ уже принят и больше не редактируется.
	ErrOrderLocked = errors.New("order is accepted and can no longer be modified")
	// ErrInvalidCredentials — неверная пара email/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid — токен не прошёл проверку подписи или истёк.
	ErrTokenInvalid = errors.New("token is invalid or expired")

	// ErrCacheMiss сигнализирует об отсутствии ключа в кэше; это не сбой.
	ErrCacheMiss = errors.New("cache miss")
)

// StoreErrorKind классифицирует ошибки хранилища, не привязываясь
// к кодам конкретной СУБД.
type StoreErrorKind string

const (
	// StoreErrUnique — нарушение уникального ограничения.
	StoreErrUnique StoreErrorKind = "unique_violation"
	// StoreErrForeignKey — нарушение внешнего ключа (ссылка на несуществующую запись).
	StoreErrForeignKey StoreErrorKind = "foreign_key_violation"
	// StoreErrOther — любая прочая ошибка хранилища.
	StoreErrOther StoreErrorKind = "other"
)

// StoreError — тегированная ошибка хранилища. Сервисный слой по Kind и Field
// решает, является ли ошибка виной клиента (409/400) или сбоем (500).
type StoreError struct {
	Kind  StoreErrorKind
	Field string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("store error (%s on %s): %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("store error (%s): %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// AsStoreError возвращает StoreError из цепочки ошибок, если он там есть.
func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsValidation проверяет, относится ли ошибка к валидации входных данных.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound проверяет, является ли ошибка отсутствием записи любого типа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShipmentNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCarrierNotFound) ||
		errors.Is(err, ErrRouteNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTrackingNotFound)
}
