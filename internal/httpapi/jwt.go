package httpapi

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenExpiry = 24 * time.Hour

// TokenService issues and verifies the signed bearer tokens handed out at
// login. Tokens are stateless: verification checks the signature and the
// expiry claim, never a server-side session.
type TokenService struct {
	key []byte
}

// NewTokenService builds a service around the configured secret. When no
// secret is set a random key is generated, which invalidates all issued
// tokens on restart.
func NewTokenService(secret string, log *zap.Logger) *TokenService {
	if secret != "" {
		return &TokenService{key: []byte(secret)}
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate signing key: " + err.Error())
	}
	log.Warn("JWT_SECRET not set, using a random signing key; tokens will not survive restarts")
	return &TokenService{key: b}
}

func (ts *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(tokenExpiry).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.key)
}

// Verify returns the subject user id of a valid token.
func (ts *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ts.key, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
