package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateToken("st_1", "ana@example.com", "Ana", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "st_1", claims.StaffID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	other := NewManager("other", time.Hour)

	token, err := other.GenerateToken("st_1", "ana@example.com", "Ana", "admin")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	expired := NewManager("secret", time.Nanosecond)
	token, err = expired.GenerateToken("st_1", "ana@example.com", "Ana", "admin")
	require.NoError(t, err)
	time.Sleep(time.Second)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
