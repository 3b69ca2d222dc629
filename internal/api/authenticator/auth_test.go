package authenticator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softdesk/tracker/internal/config"
)

func testAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	auth, err := New(&config.Config{
		JWT_SECRET:        "test-signing-key",
		ACCESS_TOKEN_TTL:  15 * time.Minute,
		REFRESH_TOKEN_TTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	return auth
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(&config.Config{})
	assert.Error(t, err)
}

func TestTokenPairRoundTrip(t *testing.T) {
	auth := testAuthenticator(t)

	pair, err := auth.GenerateTokenPair(7, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := auth.VerifyAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	auth := testAuthenticator(t)

	pair, err := auth.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(pair.Refresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	auth := testAuthenticator(t)

	pair, err := auth.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	access, err := auth.Refresh(pair.Refresh)
	require.NoError(t, err)

	claims, err := auth.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	auth := testAuthenticator(t)

	pair, err := auth.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	_, err = auth.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestTamperedTokenRejected(t *testing.T) {
	auth := testAuthenticator(t)

	pair, err := auth.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	parts := strings.Split(pair.Access, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = auth.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongKeyRejected(t *testing.T) {
	auth := testAuthenticator(t)

	other, err := New(&config.Config{
		JWT_SECRET:        "a-different-key",
		ACCESS_TOKEN_TTL:  15 * time.Minute,
		REFRESH_TOKEN_TTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	pair, err := other.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	auth, err := New(&config.Config{
		JWT_SECRET:        "test-signing-key",
		ACCESS_TOKEN_TTL:  -time.Minute,
		REFRESH_TOKEN_TTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	pair, err := auth.GenerateTokenPair(7, "alice")
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
