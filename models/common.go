package models

import (
	"strconv"
	"strings"
	"time"
)

// Flash message kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage represents a flash message for user feedback
type FlashMessage struct {
	Type    string `json:"type"` // "success", "error"
	Message string `json:"message"`
}

// FormatDateTime formats a time as YYYY-MM-DD HH:MM
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, err := range ve {
		parts[i] = err.Field + ": " + err.Message
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// GetMessages returns all error messages as a slice of strings
func (ve ValidationErrors) GetMessages() []string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return messages
}

// ByField groups messages by field name
func (ve ValidationErrors) ByField() map[string][]string {
	fields := make(map[string][]string, len(ve))
	for _, err := range ve {
		fields[err.Field] = append(fields[err.Field], err.Message)
	}
	return fields
}

// Pagination limits
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination describes one page of a result set
type Pagination struct {
	Page       int
	PerPage    int
	TotalCount int
	TotalPages int
}

// ParsePerPage parses a per_page value; anything unusable yields the fallback
func ParsePerPage(raw string, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultPerPage
	}
	perPage, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || perPage < 1 {
		return fallback
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// ParsePage parses a page number; anything unusable yields the first page
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// NewPagination builds the pagination for a total count. A page past the end
// falls back to the first page.
func NewPagination(page, perPage, totalCount int) Pagination {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (totalCount + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// Offset returns the index of the first item on the page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrevious reports whether a previous page exists
func (p Pagination) HasPrevious() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// StartIndex returns the 1-based index of the first item on the page
func (p Pagination) StartIndex() int {
	if p.TotalCount == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndIndex returns the 1-based index of the last item on the page
func (p Pagination) EndIndex() int {
	end := p.Offset() + p.PerPage
	if end > p.TotalCount {
		return p.TotalCount
	}
	return end
}

// PreviousPage returns the number of the page before this one
func (p Pagination) PreviousPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage returns the number of the page after this one
func (p Pagination) NextPage() int {
	if p.Page >= p.TotalPages {
		return p.TotalPages
	}
	return p.Page + 1
}
