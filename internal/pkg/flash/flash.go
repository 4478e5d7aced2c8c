// Package flash implements one-shot notices carried in a cookie and
// rendered on the next page load.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "portal_flash"

// Notice categories
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Notice is a transient message shown once on the next rendered page.
type Notice struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Set stores a notice for the next rendered page.
func Set(w http.ResponseWriter, category, message string) {
	payload, err := json.Marshal(Notice{Category: category, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads the pending notice, if any, and clears it so it renders
// exactly once. A malformed cookie is discarded silently.
func Pop(w http.ResponseWriter, r *http.Request) *Notice {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var notice Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return nil
	}
	return &notice
}
