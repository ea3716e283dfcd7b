package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/estantedigital/plataforma/internal/entities"
)

// DefaultTokenExpiry is the token lifetime used when none is configured.
const DefaultTokenExpiry = 2 * time.Hour

// Claims carries the identity attributes embedded in a signed token.
type Claims struct {
	jwt.RegisteredClaims
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      entities.Role `json:"role"`
	Tipo      entities.Tipo `json:"tipo"`
	ProfileID string        `json:"profileId,omitempty"`
}

// IssueToken signs a token for the given Pessoa. profileID may be empty
// when the document-store counterpart is unknown at signin time.
func IssueToken(p *entities.Pessoa, profileID string, secret []byte, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = DefaultTokenExpiry
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ID:        p.IDPessoa,
		Username:  p.Username,
		Email:     p.EmailInstitucional,
		Role:      p.Role,
		Tipo:      p.Tipo,
		ProfileID: profileID,
	})

	return token.SignedString(secret)
}

// VerifyToken parses and validates a token, returning nil for anything
// malformed, tampered with or expired. Callers branch on nil, never on
// an error.
func VerifyToken(tokenString string, secret []byte) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
