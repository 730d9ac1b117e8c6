package helpers

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// SignedDetails are the claims the external identity provider puts in a
// staff token. Uid is the tenant id every staff request is scoped to.
type SignedDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Uid   string `json:"uid"`
	jwt.RegisteredClaims
}

// ValidateToken verifies a staff token's signature and expiry. Tokens are
// minted by the identity provider; this service only verifies them with
// the shared SECRET_KEY.
func ValidateToken(signedToken string) (*SignedDetails, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY is not configured")
	}
	token, err := jwt.ParseWithClaims(signedToken, &SignedDetails{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token is invalid: %w", err)
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.Uid == "" {
		return nil, fmt.Errorf("token carries no tenant id")
	}
	return claims, nil
}
