package controllers

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"gitea.com/go-chi/session"

	"github.com/blogem/enquiry-desk/authenticator"
	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/services"
	"github.com/blogem/enquiry-desk/userctx"
	"github.com/blogem/enquiry-desk/web"
)

const (
	listPath        = "/enquiries/list/"
	flashSessionKey = "flash"
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"formatDateTime": func(t time.Time) string { return models.FormatDateTime(t) },
}

// basePage carries the fields every page template reads through the layout
type basePage struct {
	Title        string
	CurrentPage  string
	UserNickname string
	Flashes      []models.FlashMessage
}

// newBasePage fills the layout fields for the current request, consuming pending flashes
func newBasePage(r *http.Request, title, currentPage string) basePage {
	page := basePage{
		Title:       title,
		CurrentPage: currentPage,
		Flashes:     popFlashes(r),
	}
	if userctx.GetUserID(r.Context()) != "" {
		page.UserNickname = userctx.GetUserNickname(r.Context())
	}
	return page
}

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, pageTemplate string, data interface{}) error {
	// Create a new template set with only the templates we need
	tmpl, err := template.New("layout.html").
		Funcs(templateFuncs).
		ParseFS(web.Templates, "templates/layout.html", "templates/"+pageTemplate)
	if err != nil {
		log.Printf("Failed to parse template %s: %v", pageTemplate, err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("Failed to render template %s: %v", pageTemplate, err)
		return err
	}

	return nil
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// addFlash queues a message for the next rendered page
func addFlash(r *http.Request, kind, message string) {
	sess := session.GetSession(r)
	flashes, _ := sess.Get(flashSessionKey).([]models.FlashMessage)
	flashes = append(flashes, models.FlashMessage{Type: kind, Message: message})
	if err := sess.Set(flashSessionKey, flashes); err != nil {
		log.Printf("Failed to store flash message: %v", err)
	}
}

// popFlashes returns and clears the queued messages
func popFlashes(r *http.Request) []models.FlashMessage {
	sess := session.GetSession(r)
	if sess == nil {
		return nil
	}
	flashes, _ := sess.Get(flashSessionKey).([]models.FlashMessage)
	if len(flashes) > 0 {
		sess.Delete(flashSessionKey)
	}
	return flashes
}

// Controllers holds all controller instances
type Controllers struct {
	Auth    *AuthController
	Enquiry *EnquiryController
	Admin   *AdminController
}

// NewControllers creates and initializes all controller instances.
// provider may be nil when single sign-on is not configured.
func NewControllers(services *services.Services, provider authenticator.Provider, oidcCfg config.OIDCConfig) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(services, provider, oidcCfg),
		Enquiry: NewEnquiryController(services),
		Admin:   NewAdminController(services),
	}
}
