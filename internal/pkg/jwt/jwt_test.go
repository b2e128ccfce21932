package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")
	employeeID := "0190a5e4-7f3a-7c4e-9b1d-2f6a8c0d1e2f"

	token, expiresAt, err := svc.GenerateAccessToken(user.Identity{UserID: "u-1", EmployeeID: &employeeID, Role: user.RoleHR})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)

	assert.Equal(t, TokenTypeAccess, claims["type"])

	identity, err := IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, user.RoleHR, identity.Role)
	require.NotNil(t, identity.EmployeeID)
	assert.Equal(t, employeeID, *identity.EmployeeID)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")
	_, _, err := svc.GenerateAccessToken(user.Identity{UserID: "u-1", Role: user.RoleAdmin})
	assert.Error(t, err)
}

func TestIdentityFromClaims_Invalid(t *testing.T) {
	_, err := IdentityFromClaims(map[string]interface{}{"role": "admin"})
	assert.ErrorIs(t, err, user.ErrMissingIdentity)

	_, err = IdentityFromClaims(map[string]interface{}{"user_id": "u-1", "role": "owner"})
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	identity, err := IdentityFromClaims(map[string]interface{}{"user_id": "u-1", "role": "employee", "employee_id": nil})
	require.NoError(t, err)
	assert.Nil(t, identity.EmployeeID)
}

func TestIdentityFromContext(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")
	token, _, err := svc.GenerateAccessToken(user.Identity{UserID: "u-2", Role: user.RoleSupervisor})
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	identity, err := IdentityFromContext(jwtauth.NewContext(context.Background(), decoded, nil))
	require.NoError(t, err)
	assert.Equal(t, "u-2", identity.UserID)
	assert.Equal(t, user.RoleSupervisor, identity.Role)
	assert.Nil(t, identity.EmployeeID)

	_, err = IdentityFromContext(context.Background())
	assert.ErrorIs(t, err, user.ErrMissingIdentity)
}
