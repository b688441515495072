package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/contactdesk/backend/internal/service"
	"github.com/contactdesk/backend/pkg/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookieName = "oauth_state"

// generateOAuthState creates a random state string for CSRF protection.
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// setStateCookie stores the state in an HttpOnly cookie.
func setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})
}

// verifyOAuthState compares the state cookie against the query parameter.
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

// clearStateCookie removes the state cookie.
func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// AuthHandler handles operator sign-in and sign-out.
type AuthHandler struct {
	authService   service.AuthService
	googleConfig  *oauth2.Config
	sessionSecret []byte
	frontendURL   string
}

// AuthConfig carries AuthHandler configuration.
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectPath string
	SessionSecret      string
	FrontendURL        string
}

// NewAuthHandler creates an AuthHandler (DI: AuthService injected).
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	redirectBase := os.Getenv("BACKEND_URL")
	if redirectBase == "" {
		redirectBase = "http://localhost:8080"
	}

	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  redirectBase + cfg.GoogleRedirectPath,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}

	return &AuthHandler{
		authService:   authService,
		googleConfig:  googleConfig,
		sessionSecret: auth.SessionSecretBytes(cfg.SessionSecret),
		frontendURL:   cfg.FrontendURL,
	}
}

// setSessionCookie issues the signed session cookie for a logged-in operator.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, userID string) {
	token := auth.CreateSessionToken(userID, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})
}

// googleUserInfo is the Google userinfo API response.
type googleUserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLoginURL returns the Google OAuth authorization URL
// (GET /api/auth/google/login).
func (h *AuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	setStateCookie(w, state)
	url := h.googleConfig.AuthCodeURL(state)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// GoogleCallback handles the OAuth callback (GET /api/auth/google/callback).
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !verifyOAuthState(r) {
		clearStateCookie(w)
		http.Redirect(w, r, h.frontendURL+"/?error=invalid_state", http.StatusFound)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.frontendURL+"/?error=no_code", http.StatusFound)
		return
	}

	token, err := h.googleConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=exchange_failed", http.StatusFound)
		return
	}

	client := h.googleConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=userinfo_failed", http.StatusFound)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=decode_failed", http.StatusFound)
		return
	}

	user, err := h.authService.GetOrCreateUserFromGoogle(r.Context(), &service.GoogleUserInfo{
		Sub:   info.Sub,
		Email: info.Email,
		Name:  info.Name,
	})
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=create_user_failed", http.StatusFound)
		return
	}

	h.setSessionCookie(w, user.ID)
	http.Redirect(w, r, h.frontendURL+"/admin", http.StatusFound)
}

// loginRequest is the expected JSON body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles email/password sign-in (POST /api/auth/login).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "credentials_required"})
		return
	}

	user, err := h.authService.AuthenticateByPassword(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_credentials"})
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
		return
	}

	h.setSessionCookie(w, user.ID)
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// Logout clears the session cookie (POST /api/auth/logout).
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}
