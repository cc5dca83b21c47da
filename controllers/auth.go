package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gitea.com/go-chi/session"

	"github.com/blogem/enquiry-desk/authenticator"
	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/metrics"
	"github.com/blogem/enquiry-desk/middleware"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/services"
)

const stateSessionKey = "state"

// AuthController handles admin login and logout
type AuthController struct {
	services *services.Services
	provider authenticator.Provider
	oidc     config.OIDCConfig
}

// NewAuthController creates a new auth controller. provider may be nil.
func NewAuthController(services *services.Services, provider authenticator.Provider, oidcCfg config.OIDCConfig) *AuthController {
	return &AuthController{
		services: services,
		provider: provider,
		oidc:     oidcCfg,
	}
}

type loginPage struct {
	basePage
	Username   string
	SSOEnabled bool
}

// LoginPage handles GET /admin-login/
func (ac *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session.GetSession(r).Get(middleware.SessionUserID) != nil {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}

	renderTemplate(w, "admin_login.html", loginPage{
		basePage:   newBasePage(r, "Admin login", "login"),
		SSOEnabled: ac.provider != nil,
	})
}

// LoginSubmit handles POST /admin-login/
func (ac *AuthController) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if sess.Get(middleware.SessionUserID) != nil {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	user, err := ac.services.Auth.Authenticate(r.Context(), form)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("[AUTH] Login failed for %q: %v", form.Username, err)
		}
		page := loginPage{
			basePage:   newBasePage(r, "Admin login", "login"),
			Username:   form.Username,
			SSOEnabled: ac.provider != nil,
		}
		page.Flashes = append(page.Flashes, models.FlashMessage{Type: models.FlashError, Message: "Invalid login credentials"})
		renderTemplateWithStatus(w, http.StatusUnauthorized, "admin_login.html", page)
		return
	}

	log.Printf("[AUTH] Admin %s logged in", user.Username)
	ac.startSession(w, r, strconv.FormatInt(user.ID, 10), user.Email, user.Username)
}

// Logout handles GET|POST /admin-logout/
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	for _, key := range []string{
		middleware.SessionUserID,
		middleware.SessionUserEmail,
		middleware.SessionUserNickname,
		middleware.SessionRedirectAfter,
		stateSessionKey,
	} {
		sess.Delete(key)
	}

	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// Login handles GET /login, starting the single sign-on flow
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if ac.provider == nil {
		http.NotFound(w, r)
		return
	}

	// Generate random state
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	session.GetSession(r).Set(stateSessionKey, state)

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /callback from the identity provider
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	if ac.provider == nil {
		http.NotFound(w, r)
		return
	}

	sess := session.GetSession(r)

	// Verify state
	storedState, ok := sess.Get(stateSessionKey).(string)
	if !ok || storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}
	sess.Delete(stateSessionKey)

	// Exchange the code for a token
	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		metrics.RecordAuthAttempt(false)
		http.Error(w, "Failed to exchange authorization code for a token: "+err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		metrics.RecordAuthAttempt(false)
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	email := claims.Email()
	if !ac.oidc.IsAdminEmail(email) {
		metrics.RecordAuthAttempt(false)
		log.Printf("[AUTH] Rejected single sign-on for %q: not an admin", email)
		http.Error(w, "You are not allowed to access the admin pages", http.StatusForbidden)
		return
	}

	metrics.RecordAuthAttempt(true)
	log.Printf("[AUTH] Admin %s logged in with single sign-on", email)
	ac.startSession(w, r, "oidc:"+claims.Subject(), email, claims.Nickname())
}

// startSession issues a fresh session ID, stores the signed-in user and
// redirects to the remembered page
func (ac *AuthController) startSession(w http.ResponseWriter, r *http.Request, userID, email, nickname string) {
	sess, err := session.RegenerateSession(w, r)
	if err != nil {
		log.Printf("[AUTH] Failed to regenerate session for %s: %v", email, err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	sess.Set(middleware.SessionUserID, userID)
	sess.Set(middleware.SessionUserEmail, email)
	sess.Set(middleware.SessionUserNickname, nickname)

	target := listPath
	if stored, ok := sess.Get(middleware.SessionRedirectAfter).(string); ok && isLocalPath(stored) {
		target = stored
	}
	sess.Delete(middleware.SessionRedirectAfter)

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// isLocalPath rejects redirect targets that leave the site
func isLocalPath(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") && !strings.HasPrefix(path, "/\\")
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
