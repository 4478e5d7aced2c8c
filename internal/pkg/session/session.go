// Package session implements the signed cookie session for the portal.
// The session token is a signed JWT held client-side in an HTTP-only
// cookie; the server keeps no session state.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session errors
var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// CookieName is the name of the session cookie.
const CookieName = "portal_session"

// Identity is the authenticated account bound to a request.
type Identity struct {
	AccountID int64
	// DisplayName is the name cached at login (or at the last profile
	// update); it is not re-read from the store on every request.
	DisplayName string
}

// Claims defines the session token content.
type Claims struct {
	AccountID   int64  `json:"accountId"`
	DisplayName string `json:"displayName"`
	jwt.RegisteredClaims
}

// Config defines session manager settings.
type Config struct {
	Secret   string
	Lifetime time.Duration
	Issuer   string
	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// Manager issues, reads and destroys session cookies.
type Manager struct {
	config Config
}

// NewManager creates a new session Manager.
func NewManager(config Config) *Manager {
	return &Manager{config: config}
}

// Issue signs a session token for the identity and sets it as a cookie.
// Issuing over an existing session replaces it, which is how the cached
// display name is refreshed after a profile update.
func (m *Manager) Issue(w http.ResponseWriter, identity Identity) error {
	now := time.Now()
	claims := &Claims{
		AccountID:   identity.AccountID,
		DisplayName: identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.Lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
			Subject:   fmt.Sprintf("%d", identity.AccountID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read extracts and validates the session from the request cookie.
func (m *Manager) Read(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	claims, err := m.parse(cookie.Value)
	if err != nil {
		return nil, err
	}

	return &Identity{
		AccountID:   claims.AccountID,
		DisplayName: claims.DisplayName,
	}, nil
}

// Clear destroys the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// parse validates the token signature, algorithm and claims.
func (m *Manager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID <= 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
