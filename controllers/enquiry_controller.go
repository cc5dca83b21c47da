package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blogem/enquiry-desk/gateway"
	"github.com/blogem/enquiry-desk/middleware"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/services"
)

const maxSubmissionBytes = 64 << 10

// EnquiryController handles the public enquiry form
type EnquiryController struct {
	services *services.Services
}

// NewEnquiryController creates a new enquiry controller
func NewEnquiryController(services *services.Services) *EnquiryController {
	return &EnquiryController{
		services: services,
	}
}

type enquiryPage struct {
	basePage
	Form   *models.EnquiryForm
	Errors map[string][]string
}

type thankYouPage struct {
	basePage
	Resp   gateway.Response
	Failed bool
}

// Index handles GET /
func (c *EnquiryController) Index(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "index.html", enquiryPage{
		basePage: newBasePage(r, "Enquiry", "enquiry"),
		Form:     &models.EnquiryForm{},
	})
}

// Submit handles POST /
func (c *EnquiryController) Submit(w http.ResponseWriter, r *http.Request) {
	programmatic := middleware.IsProgrammatic(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	form, err := parseEnquiryForm(r)
	if err != nil {
		if programmatic {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"ok":     false,
				"errors": map[string][]string{"__all__": {"Invalid request body."}},
			})
			return
		}
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := c.services.Enquiry.Submit(r.Context(), form)

	var validationErrs models.ValidationErrors
	if errors.As(err, &validationErrs) {
		if programmatic {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"ok":     false,
				"errors": validationErrs.ByField(),
			})
			return
		}

		page := enquiryPage{
			basePage: newBasePage(r, "Enquiry", "enquiry"),
			Form:     form,
			Errors:   validationErrs.ByField(),
		}
		page.Flashes = append(page.Flashes, models.FlashMessage{Type: models.FlashError, Message: "Please correct the errors."})
		renderTemplateWithStatus(w, http.StatusBadRequest, "index.html", page)
		return
	}
	if err != nil {
		log.Printf("[ENQUIRY] Submission failed: %v", err)
		http.Error(w, "Failed to submit enquiry", http.StatusInternalServerError)
		return
	}

	resp := result.Response
	if resp.MessageData == nil {
		resp.MessageData = []any{}
	}

	if programmatic {
		status := http.StatusOK
		if resp.Failed() {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, resp)
		return
	}

	renderTemplate(w, "thankyou.html", thankYouPage{
		basePage: newBasePage(r, "Thank you", "enquiry"),
		Resp:     resp,
		Failed:   resp.Failed() || resp.ExternalStatus == nil,
	})
}

// parseEnquiryForm reads the submission from a JSON or form-encoded body
func parseEnquiryForm(r *http.Request) (*models.EnquiryForm, error) {
	if middleware.IsJSONBody(r) {
		var form models.EnquiryForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return nil, err
		}
		return &form, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &models.EnquiryForm{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Phone:     r.FormValue("phone"),
		Email:     r.FormValue("email"),
	}, nil
}
