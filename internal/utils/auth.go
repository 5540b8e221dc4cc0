package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xelth-com/goodstrack/internal/models"
)

// DefaultSessionTTL is the lifetime of issued session tokens
const DefaultSessionTTL = 24 * time.Hour

// SessionClaims is the signed session payload.
// Carrier holds the metadata used when no stored driver profile exists.
type SessionClaims struct {
	UserID  string                `json:"id"`
	Phone   string                `json:"phone"`
	Role    models.Role           `json:"role"`
	Carrier models.CarrierProfile `json:"carrier"`
	jwt.RegisteredClaims
}

// GenerateToken issues a session token for the user
func GenerateToken(user models.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	// photos stay out of the token; they are read from the stored driver profile
	carrier := user.CarrierProfile()
	carrier.DriverPhoto, carrier.LicensePhoto = "", ""

	now := time.Now()
	claims := SessionClaims{
		UserID:  user.ID,
		Phone:   user.Phone,
		Role:    user.Role,
		Carrier: carrier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token
func ValidateToken(tokenString string, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
