package domain

import "time"

// UserRole определяет права пользователя в API.
type UserRole string

const (
	// RoleCustomer — клиент: создаёт заказы и отслеживает отправления.
	RoleCustomer UserRole = "customer"
	// RoleAdmin — администратор: управляет перевозчиками, маршрутами и отправлениями.
	RoleAdmin UserRole = "admin"
	// RoleCourrier — курьер; написание унаследовано от исходной схемы данных,
	// менять его нельзя без миграции значений в БД и выданных токенах.
	RoleCourrier UserRole = "courrier"
)

// IsValid проверяет принадлежность роли к перечню.
func (r UserRole) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin || r == RoleCourrier
}

// User — учётная запись пользователя API.
// PasswordHash никогда не сериализуется наружу.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	PhoneNumber    string    `json:"phoneNumber"`
	Role           UserRole  `json:"role"`
	DefaultAddress *Address  `json:"defaultAddress,omitempty"`
	IsActive       bool      `json:"isActive"`
	EmailVerified  bool      `json:"emailVerified"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Claims — удостоверение, которое auth-слой прикрепляет к запросу.
type Claims struct {
	UserID string   `json:"uid"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}
