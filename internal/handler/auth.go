package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Lilac-Rose/gametracker/internal/middleware"
	"github.com/Lilac-Rose/gametracker/internal/store"
)

const sessionMaxAge = 30 * 24 * 60 * 60 // 30 days, matches store.sessionTTL

type AuthHandler struct {
	sessionStore *store.SessionStore
	passwordHash []byte
	logger       *slog.Logger
}

// NewAuthHandler hashes the admin password once at startup. A value that
// already looks like a bcrypt hash ($2...) is used as-is, so operators can
// keep the plaintext out of their config entirely.
func NewAuthHandler(ss *store.SessionStore, adminPassword string, logger *slog.Logger) (*AuthHandler, error) {
	var hash []byte
	if strings.HasPrefix(adminPassword, "$2") {
		hash = []byte(adminPassword)
	} else {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}
	return &AuthHandler{
		sessionStore: ss,
		passwordHash: hash,
		logger:       logger,
	}, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid JSON"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid password"})
		return
	}

	sess, err := h.sessionStore.Create()
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "failed to create session"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessionStore.DeleteByToken(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Check reports whether the request carries a live session, without
// refreshing or extending it.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	loggedIn := false
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		sess, err := h.sessionStore.GetByToken(cookie.Value)
		if err != nil {
			h.logger.Error("check session", "error", err)
		}
		loggedIn = sess != nil
	}
	writeJSON(w, http.StatusOK, map[string]bool{"logged_in": loggedIn})
}
