package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	scopeLogin   = "login"
	scopeSession = "session"

	loginTTL   = 15 * time.Minute
	sessionTTL = 12 * time.Hour
)

var (
	ErrUnknownEmail = errors.New("email is not allowed to sign in")
	ErrInvalidToken = errors.New("token is invalid or expired")
)

type linkClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// MagicLink implements the passwordless admin flow: a short-lived login
// token is emailed to the allow-listed admin, then exchanged once for a
// session token guarding the admin routes.
type MagicLink struct {
	secret     []byte
	adminEmail string
}

func NewMagicLink(secret, adminEmail string) (*MagicLink, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	if adminEmail == "" {
		return nil, errors.New("auth: admin email is required")
	}
	return &MagicLink{secret: []byte(secret), adminEmail: strings.ToLower(adminEmail)}, nil
}

func (m *MagicLink) IssueLoginToken(email string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != m.adminEmail {
		return "", ErrUnknownEmail
	}
	return m.sign(m.adminEmail, scopeLogin, loginTTL)
}

// ExchangeLoginToken trades a valid login token for a session token.
func (m *MagicLink) ExchangeLoginToken(token string) (string, error) {
	email, err := m.verify(token, scopeLogin)
	if err != nil {
		return "", err
	}
	return m.sign(email, scopeSession, sessionTTL)
}

// VerifySession returns the authenticated email for a session token.
func (m *MagicLink) VerifySession(token string) (string, error) {
	return m.verify(token, scopeSession)
}

func (m *MagicLink) sign(email, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := linkClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *MagicLink) verify(token, wantScope string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &linkClaims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*linkClaims)
	if !ok || claims.Scope != wantScope {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid session bearer token.
func (m *MagicLink) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(w)
			return
		}
		if _, err := m.VerifySession(token); err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprint(w, `{"error":"unauthorized"}`)
}
