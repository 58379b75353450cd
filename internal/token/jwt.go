package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/model"
)

// SessionTTL is the default lifetime of a session token.
const SessionTTL = 7 * 24 * time.Hour

// Claims represents JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// Option configures a JWT token manager.
type Option func(*JWT)

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(j *JWT) {
		if ttl > 0 {
			j.ttl = ttl
		}
	}
}

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret is empty")
	}

	j := &JWT{
		secretKey: []byte(secretKey),
		ttl:       SessionTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// TTL returns the lifetime of issued tokens.
func (j *JWT) TTL() time.Duration {
	return j.ttl
}

// Issue creates a signed session token for the given identity.
func (j *JWT) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	// NumericDate has second precision; the returned expiry must match exp.
	now := j.now().Truncate(time.Second)
	expiresAt := now.Add(j.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate verifies signature and expiry and returns the embedded claims.
// Every failure is reported as model.ErrInvalidToken.
func (j *JWT) Validate(tokenString string) (claims model.SessionClaims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims, err = model.SessionClaims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, r)
		}
	}()

	if tokenString == "" {
		return model.SessionClaims{}, model.ErrInvalidToken
	}

	parsed := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrInvalidToken
	}

	// now >= exp is expired.
	if !j.now().Before(parsed.ExpiresAt.Time) {
		return model.SessionClaims{}, fmt.Errorf("%w: token expired", model.ErrInvalidToken)
	}

	userID, err := uuid.Parse(parsed.Subject)
	if err != nil || userID == uuid.Nil {
		return model.SessionClaims{}, fmt.Errorf("%w: bad subject", model.ErrInvalidToken)
	}

	out := model.SessionClaims{
		UserID:    userID,
		Email:     parsed.Email,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		out.IssuedAt = parsed.IssuedAt.Time
	}

	return out, nil
}
