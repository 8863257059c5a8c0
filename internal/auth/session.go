package auth

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The session cookie value is a signed HS256 JWT carrying the department and
// username, mirroring a client-side signed session: logout simply drops the
// cookie.

const (
	issuer            = "fundacite"
	secretEnvVariable = "SOLICITUDES_AUTH_SECRET"

	// DefaultSessionTTL bounds how long a session cookie stays valid.
	DefaultSessionTTL = 12 * time.Hour
)

var (
	errMissingSecret = errors.New("auth secret is not configured")

	secretMu sync.Mutex
	secret   cachedSecret
)

type cachedSecret struct {
	value []byte
	err   error
	ready bool
}

// SessionClaims are the JWT claims embedded in the session cookie.
type SessionClaims struct {
	Departamento string `json:"departamento"`
	Username     string `json:"username"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a session JWT for the given user using HS256.
func IssueSessionToken(user *User, ttl time.Duration) (string, time.Time, error) {
	if user == nil || strings.TrimSpace(user.Username) == "" {
		return "", time.Time{}, errors.New("user is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	secretBytes, err := loadSecret()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := SessionClaims{
		Departamento: user.Departamento,
		Username:     user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken verifies the token signature and claims and returns the
// session it represents.
func ParseSessionToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidToken
	}
	secretBytes, err := loadSecret()
	if err != nil {
		return Session{}, err
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return secretBytes, nil
	})
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}
	if err := validateClaims(claims); err != nil {
		return Session{}, ErrInvalidToken
	}
	return Session{Departamento: claims.Departamento, Username: claims.Username}, nil
}

func validateClaims(claims *SessionClaims) error {
	if claims.Issuer != issuer {
		return errors.New("unexpected issuer")
	}
	if strings.TrimSpace(claims.Departamento) == "" {
		return errors.New("departamento missing")
	}
	if strings.TrimSpace(claims.Username) == "" {
		return errors.New("username missing")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return errors.New("timestamps missing")
	}
	now := time.Now().UTC()
	if now.After(claims.ExpiresAt.Time) {
		return errors.New("token expired")
	}
	// Allow a small clock skew of 5 seconds when validating issued-at.
	if claims.IssuedAt.Time.After(now.Add(5 * time.Second)) {
		return errors.New("token issued in the future")
	}
	return nil
}

func loadSecret() ([]byte, error) {
	secretMu.Lock()
	defer secretMu.Unlock()
	if secret.ready {
		return secret.value, secret.err
	}
	raw := strings.TrimSpace(os.Getenv(secretEnvVariable))
	if raw == "" {
		secret.err = errMissingSecret
		secret.ready = true
		return nil, secret.err
	}
	secret.value = []byte(raw)
	secret.err = nil
	secret.ready = true
	return secret.value, nil
}

// ResetSecretForTests clears the cached secret value. Only intended for test use.
func ResetSecretForTests() {
	secretMu.Lock()
	defer secretMu.Unlock()
	secret = cachedSecret{}
}
