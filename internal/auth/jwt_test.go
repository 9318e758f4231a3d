package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/backoffice-api/internal/domain"
)

func testStaff() *domain.Staff {
	return &domain.Staff{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		FullName:  "Reviewer One",
		Email:     "reviewer@example.com",
		Role:      domain.RoleAdmin,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	staff := testStaff()

	token, expiresAt, err := manager.Issue(staff)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	user, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, staff.ID, user.UserID)
	assert.Equal(t, "Reviewer One", user.DisplayName)
	assert.Equal(t, "reviewer@example.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestTokenManager_ExpiredTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, _, err := manager.Issue(testStaff())
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(testStaff())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_GarbageRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
