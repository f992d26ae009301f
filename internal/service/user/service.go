package user

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// Service реализует регистрацию, вход и управление пользователями.
// Пароли хранятся только как bcrypt-хэши.
type Service struct {
	repo   domain.UserRepository
	tokens domain.TokenService
	logger *log.Entry
}

// RegisterInput — данные регистрации. Роль по умолчанию — customer.
type RegisterInput struct {
	Email          string          `json:"email"`
	Password       string          `json:"password"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	DocumentType   string          `json:"documentType"`
	DocumentNumber string          `json:"documentNumber"`
	PhoneNumber    string          `json:"phoneNumber"`
	Role           domain.UserRole `json:"role"`
	DefaultAddress *domain.Address `json:"defaultAddress,omitempty"`
}

// UpdateInput — частичное обновление профиля.
type UpdateInput struct {
	FirstName      *string         `json:"firstName,omitempty"`
	LastName       *string         `json:"lastName,omitempty"`
	DocumentType   *string         `json:"documentType,omitempty"`
	DocumentNumber *string         `json:"documentNumber,omitempty"`
	PhoneNumber    *string         `json:"phoneNumber,omitempty"`
	DefaultAddress *domain.Address `json:"defaultAddress,omitempty"`
	IsActive       *bool           `json:"isActive,omitempty"`
}

// NewService конструирует сервис пользователей.
func NewService(repo domain.UserRepository, tokens domain.TokenService, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "user-service")
	}
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// Register создаёт учётную запись и возвращает её без хэша пароля наружу
// (hash скрыт на уровне сериализации User).
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return domain.User{}, domain.ErrCredentialsRequired
	}
	if in.Role == "" {
		in.Role = domain.RoleCustomer
	}
	if !in.Role.IsValid() {
		return domain.User{}, domain.ErrUserRoleInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	return s.repo.Create(domain.User{
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:   string(hash),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		PhoneNumber:    in.PhoneNumber,
		Role:           in.Role,
		DefaultAddress: in.DefaultAddress,
		IsActive:       true,
	})
}

// Login проверяет учётные данные и выпускает токен. Несуществующий email
// и неверный пароль неразличимы для клиента — оба дают ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", domain.User{}, domain.ErrCredentialsRequired
	}

	usr, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Claims{
		UserID: usr.ID,
		Email:  usr.Email,
		Role:   usr.Role,
	})
	if err != nil {
		return "", domain.User{}, err
	}

	now := time.Now().UTC()
	usr.LastLogin = &now
	if updated, uerr := s.repo.Update(usr); uerr == nil {
		usr = updated
	} else {
		// Метка последнего входа вторична; вход не ломаем из-за неё.
		s.logger.WithError(uerr).WithField("user_id", usr.ID).Warn("failed to record last login")
	}

	return token, usr, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.Get(id)
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List()
}

// Update применяет частичное обновление профиля поверх текущей записи.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (domain.User, error) {
	usr, err := s.repo.Get(id)
	if err != nil {
		return domain.User{}, err
	}

	if in.FirstName != nil {
		usr.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		usr.LastName = *in.LastName
	}
	if in.DocumentType != nil {
		usr.DocumentType = *in.DocumentType
	}
	if in.DocumentNumber != nil {
		usr.DocumentNumber = *in.DocumentNumber
	}
	if in.PhoneNumber != nil {
		usr.PhoneNumber = *in.PhoneNumber
	}
	if in.DefaultAddress != nil {
		usr.DefaultAddress = in.DefaultAddress
	}
	if in.IsActive != nil {
		usr.IsActive = *in.IsActive
	}

	return s.repo.Update(usr)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}
	return nil
}
