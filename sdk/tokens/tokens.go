// Package tokens issues and verifies the signed bearer tokens that carry a
// user's identity. Verification is stateless.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrazmi/tasker/sdk/environment"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Options is the exportable configuration struct
type Options struct {
	SigningKey string        `env:"JWT_SIGNING_KEY" required:"true"`
	TTL        time.Duration `env:"JWT_TTL" default:"24h"`
	Issuer     string        `env:"JWT_ISSUER" default:"tasker"`
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

func New(opts Options, options ...Option) (*Issuer, error) {
	if opts.SigningKey == "" {
		return nil, errors.New("token signing key is required")
	}
	if opts.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", opts.TTL)
	}

	i := &Issuer{
		key:    []byte(opts.SigningKey),
		ttl:    opts.TTL,
		issuer: opts.Issuer,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(i)
	}
	return i, nil
}

func NewFromEnv(prefix string, options ...Option) (*Issuer, error) {
	var opts Options
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return nil, fmt.Errorf("parsing token config: %w", err)
	}
	return New(opts, options...)
}

// Issue returns a signed token embedding userID.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the claims.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	var claims Claims

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	}, parserOpts...)
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return claims, nil
}
