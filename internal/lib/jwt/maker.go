package jwt

import (
	"time"

	"github.com/NikolaMax/ticketing-backend/internal/config"
	"github.com/NikolaMax/ticketing-backend/internal/lib/device"
)

// Maker describes token issuing and parsing.
type Maker interface {
	// GenerateToken issues a token for username and role with the
	// lifetime of the given device class.
	GenerateToken(username, role string, class device.Class) (string, error)
	// ParseToken returns the *CustomClaims of a valid token.
	ParseToken(tokenStr string) (*CustomClaims, error)
	// TTL returns the token lifetime for a device class.
	TTL(class device.Class) time.Duration
}

// MakerImpl implements Maker with a shared secret and a per-device-class
// lifetime table.
type MakerImpl struct {
	secretKey  string
	ttlDesktop time.Duration
	ttlTablet  time.Duration
	ttlMobile  time.Duration
}

// NewJWTMaker builds a MakerImpl from the jwttoken config section.
func NewJWTMaker(cfg config.JWTToken) *MakerImpl {
	return &MakerImpl{
		secretKey:  cfg.JWTSecretKey,
		ttlDesktop: cfg.TTLDesktop,
		ttlTablet:  cfg.TTLTablet,
		ttlMobile:  cfg.TTLMobile,
	}
}

// TTL selects the token lifetime for a device class, desktop by default.
func (j *MakerImpl) TTL(class device.Class) time.Duration {
	switch class {
	case device.Tablet:
		return j.ttlTablet
	case device.Mobile:
		return j.ttlMobile
	default:
		return j.ttlDesktop
	}
}
