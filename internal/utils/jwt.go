package utils // package utils provides the crypto helpers behind the API

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// DefaultTokenTTL is the lifetime of a login token unless configured otherwise.
const DefaultTokenTTL = time.Hour

var (
	// ErrTokenExpired is returned by Verify for a well-signed but expired token.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned by Verify for every other rejection.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the payload carried by a login token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a server-wide secret.  It
// holds no per-session state; a token is valid until it expires.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time // overridable clock; time.Now when nil
}

// NewTokenIssuer returns an issuer for secret.  A non-positive ttl falls back
// to DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl}
}

func (t *TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Issue builds and signs a token for the given username and email.  The
// token carries iat and exp (iat + TTL) alongside the user claims.
func (t *TokenIssuer) Issue(username, email string) (string, error) {
	iat := t.now().UTC()
	claims := Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

// Verify parses raw, checks the HMAC signature and the expiry, and returns
// the claims.
func (t *TokenIssuer) Verify(raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (interface{}, error) {
		// Reject anything that is not HMAC before handing out the secret.
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.Secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, errors.Join(ErrTokenInvalid, err)
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
