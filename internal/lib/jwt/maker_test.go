package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaMax/ticketing-backend/internal/config"
	"github.com/NikolaMax/ticketing-backend/internal/lib/device"
)

func testMaker() *MakerImpl {
	return NewJWTMaker(config.JWTToken{
		JWTSecretKey: "test-secret",
		TTLDesktop:   time.Hour,
		TTLTablet:    30 * time.Minute,
		TTLMobile:    15 * time.Minute,
	})
}

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := testMaker()

	token, err := maker.GenerateToken("pera", "sys_admin", device.Desktop)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "pera", claims.Username)
	assert.Equal(t, "sys_admin", claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestMaker_TTLPerDeviceClass(t *testing.T) {
	maker := testMaker()

	cases := []struct {
		name  string
		class device.Class
		want  time.Duration
	}{
		{"desktop", device.Desktop, time.Hour},
		{"tablet", device.Tablet, 30 * time.Minute},
		{"mobile", device.Mobile, 15 * time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, maker.TTL(tc.class))
		})
	}
}

func TestMaker_ParseToken_WrongSecret(t *testing.T) {
	maker := testMaker()
	other := NewJWTMaker(config.JWTToken{
		JWTSecretKey: "another-secret",
		TTLDesktop:   time.Hour,
	})

	token, err := maker.GenerateToken("pera", "registered_user", device.Desktop)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker(config.JWTToken{
		JWTSecretKey: "test-secret",
		TTLDesktop:   -time.Minute,
	})

	token, err := maker.GenerateToken("pera", "registered_user", device.Desktop)
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.Error(t, err)
}

func TestMaker_ParseToken_Garbage(t *testing.T) {
	maker := testMaker()
	_, err := maker.ParseToken("not.a.token")
	require.Error(t, err)
}

func TestCanRefresh(t *testing.T) {
	maker := testMaker()
	token, err := maker.GenerateToken("pera", "registered_user", device.Desktop)
	require.NoError(t, err)
	claims, err := maker.ParseToken(token)
	require.NoError(t, err)

	issuedAt := claims.IssuedAt.Time

	assert.True(t, CanRefresh(claims, issuedAt.Add(-time.Hour)), "reset before issue")
	assert.True(t, CanRefresh(claims, issuedAt), "reset exactly at issue")
	assert.False(t, CanRefresh(claims, issuedAt.Add(time.Hour)), "reset after issue")

	assert.False(t, CanRefresh(&CustomClaims{}, time.Time{}), "missing issued-at")
}
