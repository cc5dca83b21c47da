package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/repositories"
	"github.com/blogem/enquiry-desk/services"
)

// pageSizes offered by the list page's per-page selector
var pageSizes = []int{10, 25, 50, 100}

// AdminController handles the authenticated enquiry list and delete pages
type AdminController struct {
	services *services.Services
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services) *AdminController {
	return &AdminController{
		services: services,
	}
}

type listPage struct {
	basePage
	Page      *services.EnquiryPage
	PageSizes []int
}

type confirmDeletePage struct {
	basePage
	Enquiry *models.Enquiry
}

// List handles GET /enquiries/list/
func (c *AdminController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := c.services.Enquiry.List(r.Context(), services.ListQuery{
		Query:   query.Get("q"),
		PerPage: query.Get("per_page"),
		Page:    query.Get("page"),
	})
	if err != nil {
		log.Printf("[ENQUIRY] Failed to list enquiries: %v", err)
		http.Error(w, "Failed to load enquiries", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "admin_list.html", listPage{
		basePage:  newBasePage(r, "Enquiries", "list"),
		Page:      page,
		PageSizes: pageSizes,
	})
}

// Delete handles GET|POST /enquiries/delete/ and /enquiries/delete/{id}/.
// An ext_id parameter targets the external API; otherwise {id} targets the local store.
func (c *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	if extID := r.FormValue("ext_id"); extID != "" {
		c.deleteExternal(w, r, extID)
		return
	}

	if idStr := chi.URLParam(r, "id"); idStr != "" {
		c.deleteLocal(w, r, idStr)
		return
	}

	addFlash(r, models.FlashError, "No ID provided to delete.")
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

func (c *AdminController) deleteExternal(w http.ResponseWriter, r *http.Request, extID string) {
	result, err := c.services.Enquiry.DeleteExternal(r.Context(), extID)
	switch {
	case err != nil:
		addFlash(r, models.FlashError, fmt.Sprintf("External delete failed: %v", err))
	case result.Success:
		addFlash(r, models.FlashSuccess, fmt.Sprintf("External enquiry %s deleted. Response: %s", extID, result.ResponseText))
	default:
		addFlash(r, models.FlashError, fmt.Sprintf("Delete failed. Response: %s", result.ResponseText))
	}

	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

func (c *AdminController) deleteLocal(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	enquiry, err := c.services.Enquiry.GetEnquiry(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("[ENQUIRY] Failed to load enquiry %d: %v", id, err)
		http.Error(w, "Failed to load enquiry", http.StatusInternalServerError)
		return
	}

	if r.Method != http.MethodPost {
		renderTemplate(w, "admin_confirm_delete.html", confirmDeletePage{
			basePage: newBasePage(r, "Delete enquiry", "list"),
			Enquiry:  enquiry,
		})
		return
	}

	if err := c.services.Enquiry.DeleteLocal(r.Context(), id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("[ENQUIRY] Failed to delete enquiry %d: %v", id, err)
		http.Error(w, "Failed to delete enquiry", http.StatusInternalServerError)
		return
	}

	addFlash(r, models.FlashSuccess, "Enquiry deleted.")
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
