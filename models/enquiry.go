package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits for enquiry form data
const (
	MaxNameLength  = 150
	MaxPhoneLength = 30
	MaxEmailLength = 254
)

// Enquiry is the local audit copy of a submitted enquiry
type Enquiry struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        string    `json:"phone" db:"phone"`
	Email        string    `json:"email" db:"email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	ResponseCode *int      `json:"response_code" db:"response_code"`
	ResponseText string    `json:"response_text" db:"response_text"`
}

// FullName joins first and last name
func (e Enquiry) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// String mirrors how an enquiry is labelled in admin pages
func (e Enquiry) String() string {
	return fmt.Sprintf("%s - %s", e.FullName(), e.Phone)
}

// EnquiryForm represents public form data for a new enquiry
type EnquiryForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Normalize trims surrounding whitespace from every field
func (f *EnquiryForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
}

// Validate validates the enquiry form data, returning field-level errors
func (f *EnquiryForm) Validate() ValidationErrors {
	var errs ValidationErrors

	required := func(field, value string) bool {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "This field is required."})
			return false
		}
		return true
	}
	maxLength := func(field, value string, limit int) {
		if n := utf8.RuneCountInString(value); n > limit {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", limit, n),
			})
		}
	}

	if required("first_name", f.FirstName) {
		maxLength("first_name", f.FirstName, MaxNameLength)
	}

	maxLength("last_name", f.LastName, MaxNameLength)

	if required("phone", f.Phone) {
		maxLength("phone", f.Phone, MaxPhoneLength)
	}

	if required("email", f.Email) {
		if !isValidEmail(f.Email) {
			errs = append(errs, ValidationError{Field: "email", Message: "Enter a valid email address."})
		} else {
			maxLength("email", f.Email, MaxEmailLength)
		}
	}

	return errs
}

// ToEnquiry builds the audit record for a validated form
func (f *EnquiryForm) ToEnquiry() *Enquiry {
	return &Enquiry{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		Email:     f.Email,
	}
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	// Simple validation: must contain @ and at least one dot after @
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			if atIndex != -1 {
				return false // Multiple @ symbols
			}
			atIndex = i
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false // No @, or @ at start/end
	}

	domain := email[atIndex+1:]
	if strings.HasPrefix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}

	// Check for dot after @
	for i := atIndex + 1; i < len(email); i++ {
		if email[i] == '.' && i < len(email)-1 {
			return true
		}
	}

	return false
}
