package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	users := newFakeUserRepo()
	s := NewAuthService(users)

	firstID, err := s.Register(context.Background(), "admin@example.com", "password123")
	require.NoError(t, err)

	secondID, err := s.Register(context.Background(), "member@example.com", "password123")
	require.NoError(t, err)

	first, _, _ := users.GetByID(context.Background(), firstID)
	second, _, _ := users.GetByID(context.Background(), secondID)
	assert.True(t, first.IsAdmin)
	assert.False(t, second.IsAdmin)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s := NewAuthService(newFakeUserRepo())

	_, err := s.Register(context.Background(), "someone@example.com", "password123")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "Someone@Example.com", "otherpassword")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	s := NewAuthService(newFakeUserRepo())

	_, err := s.Register(context.Background(), "not-an-email", "password123")
	assert.Error(t, err)

	_, err = s.Register(context.Background(), "someone@example.com", "short")
	assert.Error(t, err)
}

func TestLoginRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	s := NewAuthService(users)

	registeredID, err := s.Register(context.Background(), "someone@example.com", "password123")
	require.NoError(t, err)

	loggedInID, err := s.Login(context.Background(), "someone@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registeredID, loggedInID)

	_, err = s.Login(context.Background(), "someone@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
