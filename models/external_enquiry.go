package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Candidate keys per canonical field, in lookup order. The external API is not
// consistent about key casing.
var (
	externalIDKeys        = []string{"Id", "ID", "id", "EnquiryId", "EnquiryID", "enquiry_id", "enquiryId"}
	externalFirstNameKeys = []string{"Firstname", "FirstName", "firstname", "first_name"}
	externalLastNameKeys  = []string{"Lastname", "LastName", "lastname", "last_name"}
	externalPhoneKeys     = []string{"PhoneNo", "Phoneno", "phoneno", "phone_no", "Phone", "phone"}
	externalEmailKeys     = []string{"Email", "email", "EmailId", "email_id"}
)

// ExternalEnquiry is an enquiry owned by the external API, in canonical shape
type ExternalEnquiry struct {
	ID        string         `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Raw       map[string]any `json:"-"`
}

// NewExternalEnquiry normalizes a loosely-typed record from the external API
func NewExternalEnquiry(raw map[string]any) ExternalEnquiry {
	return ExternalEnquiry{
		ID:        lookupString(raw, externalIDKeys),
		FirstName: lookupString(raw, externalFirstNameKeys),
		LastName:  lookupString(raw, externalLastNameKeys),
		Phone:     lookupString(raw, externalPhoneKeys),
		Email:     lookupString(raw, externalEmailKeys),
		Raw:       raw,
	}
}

// FullName joins first and last name
func (e ExternalEnquiry) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Matches reports whether any searchable field contains the query, ignoring case.
// An empty query matches everything.
func (e ExternalEnquiry) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, v := range []string{e.FirstName, e.LastName, e.Phone, e.Email} {
		if v != "" && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// lookupString returns the first non-empty candidate value rendered as text
func lookupString(raw map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
