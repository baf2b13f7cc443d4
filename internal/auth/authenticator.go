package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authenticator resolves the operator behind a request.
type Authenticator interface {
	Authenticate(r *http.Request) (*Principal, error)
}

type BasicAuthenticator struct {
	operators *OperatorStore
}

func NewBasicAuthenticator(operators *OperatorStore) *BasicAuthenticator {
	return &BasicAuthenticator{operators: operators}
}

func (a *BasicAuthenticator) Authenticate(r *http.Request) (*Principal, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, ErrUnauthorized
	}
	if err := a.operators.Verify(username, password); err != nil {
		return nil, err
	}
	return &Principal{Username: username, Method: "basic"}, nil
}

// TokenIssuer signs and verifies HS256 operator tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

const tokenIssuer = "storefront-admin"

func (t *TokenIssuer) Issue(username string) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

func (t *TokenIssuer) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}

// BearerAuthenticator accepts tokens from issuer whose subject is still a
// configured operator, so removing an operator revokes their tokens.
type BearerAuthenticator struct {
	issuer    *TokenIssuer
	operators *OperatorStore
}

func NewBearerAuthenticator(issuer *TokenIssuer, operators *OperatorStore) *BearerAuthenticator {
	return &BearerAuthenticator{issuer: issuer, operators: operators}
}

func (a *BearerAuthenticator) Authenticate(r *http.Request) (*Principal, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, ErrUnauthorized
	}
	username, err := a.issuer.Verify(token)
	if err != nil {
		return nil, err
	}
	if !a.operators.Has(username) {
		return nil, ErrUnauthorized
	}
	return &Principal{Username: username, Method: "bearer"}, nil
}

// Chain tries each authenticator in order and returns the first success.
type Chain []Authenticator

func (c Chain) Authenticate(r *http.Request) (*Principal, error) {
	for _, a := range c {
		p, err := a.Authenticate(r)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
	}
	return nil, ErrUnauthorized
}
