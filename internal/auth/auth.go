// Package auth issues and verifies the HS256 bearer tokens that identify
// callers. A token carries the user id in "sub" and the backing session id in
// "jti"; signature and expiry are checked here, session liveness is checked by
// the service layer.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization header")
	ErrBadAuthorization     = errors.New("bad authorization header")
)

// Claims is the verified identity extracted from a token.
type Claims struct {
	UserID    uint
	SessionID string
}

// Auth signs and validates tokens with a shared secret.
type Auth struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func New(secret string, ttl time.Duration) *Auth {
	return &Auth{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
	}
}

// TTL returns the lifetime issued tokens get.
func (a *Auth) TTL() time.Duration {
	return a.ttl
}

// Issue signs a token for the given user and session.
func (a *Auth) Issue(userID uint, sessionID string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"jti": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(a.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ParseAuthHeader extracts and verifies the bearer token from an Authorization
// header value.
func (a *Auth) ParseAuthHeader(header string) (Claims, error) {
	token, err := bearerToken(header)
	if err != nil {
		return Claims{}, err
	}
	return a.Parse(token)
}

// Parse verifies a raw token string.
func (a *Auth) Parse(token string) (Claims, error) {
	parsed, err := a.parser.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || userID == 0 {
		return Claims{}, errors.New("missing sub")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return Claims{}, errors.New("missing jti")
	}

	return Claims{UserID: uint(userID), SessionID: jti}, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingAuthorization
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrBadAuthorization
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrBadAuthorization
	}
	return token, nil
}
