package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

func TestUserRepository_EmailUniqueness(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.Create(domain.User{Email: "ada@example.com"})
	require.NoError(t, err)

	// Регистр не спасает от дубликата.
	_, err = repo.Create(domain.User{Email: "ADA@example.com"})
	require.Error(t, err)

	se, ok := domain.AsStoreError(err)
	require.True(t, ok)
	assert.Equal(t, domain.StoreErrUnique, se.Kind)
	assert.Equal(t, "email", se.Field)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	repo := NewUserRepository()

	created, err := repo.Create(domain.User{Email: "ada@example.com"})
	require.NoError(t, err)

	found, err := repo.GetByEmail("ADA@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByEmail("ghost@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UpdateOverwrites(t *testing.T) {
	repo := NewUserRepository()

	created, err := repo.Create(domain.User{Email: "ada@example.com", FirstName: "Ada"})
	require.NoError(t, err)

	created.FirstName = "Augusta"
	updated, err := repo.Update(created)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt) || updated.UpdatedAt.Equal(created.CreatedAt))

	_, err = repo.Update(domain.User{ID: "missing"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
