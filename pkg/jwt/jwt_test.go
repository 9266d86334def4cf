package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	token, err := signer.GenerateToken("u2", "Store Manager", "Manager", []string{"view_dashboard"})
	require.NoError(t, err)

	claims, err := signer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)
	assert.Equal(t, "Store Manager", claims.Name)
	assert.Equal(t, []string{"view_dashboard"}, claims.Permissions)
}

func TestSignerRejectsForeignAndExpiredTokens(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)
	other := NewSigner("other-secret", time.Hour)

	token, err := other.GenerateToken("u1", "Admin User", "Admin", nil)
	require.NoError(t, err)
	_, err = signer.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	past := time.Now().Add(-48 * time.Hour)
	expired := NewSigner("test-secret", time.Hour)
	expired.now = func() time.Time { return past }
	token, err = expired.GenerateToken("u1", "Admin User", "Admin", nil)
	require.NoError(t, err)
	_, err = signer.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
