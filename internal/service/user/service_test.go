package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/auth"
	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/storage/memory"
)

func newFixture(t *testing.T) *Service {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret", 0)
	require.NoError(t, err)
	return NewService(memory.NewUserRepository(), tokens, nil)
}

func register(t *testing.T, svc *Service, email, password string) domain.User {
	t.Helper()

	usr, err := svc.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	return usr
}

func TestService_Register(t *testing.T) {
	svc := newFixture(t)

	usr := register(t, svc, "Ada@Example.com", "s3cret")
	assert.NotEmpty(t, usr.ID)
	// Email нормализуется к нижнему регистру.
	assert.Equal(t, "ada@example.com", usr.Email)
	assert.Equal(t, domain.RoleCustomer, usr.Role)
	assert.True(t, usr.IsActive)
	// Пароль не хранится открытым текстом.
	assert.NotEqual(t, "s3cret", usr.PasswordHash)
	assert.NotEmpty(t, usr.PasswordHash)
}

func TestService_Register_Validation(t *testing.T) {
	svc := newFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c"})
	require.ErrorIs(t, err, domain.ErrCredentialsRequired)

	_, err = svc.Register(context.Background(), RegisterInput{Password: "x"})
	require.ErrorIs(t, err, domain.ErrCredentialsRequired)

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "a@b.c",
		Password: "x",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, domain.ErrUserRoleInvalid)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newFixture(t)
	register(t, svc, "ada@example.com", "s3cret")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ADA@example.com",
		Password: "other",
	})
	require.Error(t, err)

	se, ok := domain.AsStoreError(err)
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrUnique, se.Kind)
	assert.Equal(t, "email", se.Field)
}

func TestService_Login(t *testing.T) {
	svc := newFixture(t)
	registered := register(t, svc, "ada@example.com", "s3cret")

	token, usr, err := svc.Login(context.Background(), "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, usr.ID)
	// Метка последнего входа проставлена.
	require.NotNil(t, usr.LastLogin)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := newFixture(t)
	register(t, svc, "ada@example.com", "s3cret")

	_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc := newFixture(t)

	// Несуществующий email даёт ту же ошибку, что и неверный пароль.
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestService_Update_PartialMerge(t *testing.T) {
	svc := newFixture(t)
	usr := register(t, svc, "ada@example.com", "s3cret")

	phone := "+57 300 000 0000"
	updated, err := svc.Update(context.Background(), usr.ID, UpdateInput{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.PhoneNumber)
	assert.Equal(t, usr.FirstName, updated.FirstName)
	assert.Equal(t, usr.Email, updated.Email)
}

func TestService_Delete(t *testing.T) {
	svc := newFixture(t)
	usr := register(t, svc, "ada@example.com", "s3cret")

	require.NoError(t, svc.Delete(context.Background(), usr.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), usr.ID), domain.ErrUserNotFound)
}
