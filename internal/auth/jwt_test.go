package auth

import (
	"testing"

	"personel-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-123456"

func TestGenerateTokenRoundTrip(t *testing.T) {
	branchID := uint(3)
	user := &models.User{
		ID:       7,
		BranchID: &branchID,
		Name:     "Şube Yöneticisi",
		Email:    "ik@example.com",
		Role:     models.RoleHRAdmin,
	}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "ik@example.com", claims.Email)
	require.Equal(t, models.RoleHRAdmin, claims.Role)
	require.NotNil(t, claims.BranchID)
	require.Equal(t, uint(3), *claims.BranchID)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleSuperAdmin}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("baska-bir-secret-degeri-9876543210abc"), nil
	})
	require.Error(t, err)
}
