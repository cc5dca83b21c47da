package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/blogem/enquiry-desk/gateway"
	"github.com/blogem/enquiry-desk/metrics"
	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/repositories"
)

// List data sources
const (
	SourceExternal = "external"
	SourceLocal    = "local"
)

const localSaveTimeout = 5 * time.Second

// EnquiryService interface defines enquiry submission and administration logic
type EnquiryService interface {
	Submit(ctx context.Context, form *models.EnquiryForm) (*SubmissionResult, error)
	List(ctx context.Context, query ListQuery) (*EnquiryPage, error)
	DeleteExternal(ctx context.Context, externalID string) (gateway.DeleteResult, error)
	GetEnquiry(ctx context.Context, id int64) (*models.Enquiry, error)
	DeleteLocal(ctx context.Context, id int64) error
}

// SubmissionResult is the outcome of a valid submission. Enquiry is nil when
// the local copy could not be saved.
type SubmissionResult struct {
	Response gateway.Response
	Enquiry  *models.Enquiry
}

// ListQuery holds the raw admin list parameters as received
type ListQuery struct {
	Query   string
	PerPage string
	Page    string
}

// EnquiryPage is one page of the admin list. Exactly one of External and
// Local is populated, depending on Source.
type EnquiryPage struct {
	Source        string
	ExternalError string
	External      []models.ExternalEnquiry
	Local         []models.Enquiry
	Pagination    models.Pagination
	Query         string
}

// FromExternal reports whether the page was served by the external API
func (p *EnquiryPage) FromExternal() bool {
	return p.Source == SourceExternal
}

// enquiryService implements EnquiryService interface
type enquiryService struct {
	gateway         gateway.Client
	enquiryRepo     repositories.EnquiryRepository
	defaultPageSize int
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(client gateway.Client, enquiryRepo repositories.EnquiryRepository, defaultPageSize int) EnquiryService {
	if defaultPageSize <= 0 {
		defaultPageSize = models.DefaultPerPage
	}
	return &enquiryService{
		gateway:         client,
		enquiryRepo:     enquiryRepo,
		defaultPageSize: defaultPageSize,
	}
}

// Submit validates the form, forwards it to the external API and keeps a
// local copy. Only validation failures are returned as errors.
func (s *enquiryService) Submit(ctx context.Context, form *models.EnquiryForm) (*SubmissionResult, error) {
	form.Normalize()
	if errs := form.Validate(); errs.HasErrors() {
		metrics.RecordSubmission("invalid")
		return nil, errs
	}

	resp := s.gateway.Submit(ctx, gateway.SubmitRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		Email:     form.Email,
	})

	outcome := "forwarded"
	if resp.ExternalStatus == nil || resp.Failed() {
		outcome = "upstream_error"
	}
	metrics.RecordSubmission(outcome)

	enquiry := form.ToEnquiry()
	enquiry.ResponseCode = resp.MessageCode
	enquiry.ResponseText = resp.MessageText

	// The copy is kept even when the caller has gone away during the external call
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), localSaveTimeout)
	defer cancel()
	if err := s.enquiryRepo.Create(saveCtx, enquiry); err != nil {
		log.Printf("[ENQUIRY] Failed to save local enquiry (non-fatal): %v", err)
		metrics.RecordLocalSaveFailure()
		enquiry = nil
	}

	return &SubmissionResult{Response: resp, Enquiry: enquiry}, nil
}

// List returns one page of enquiries from the external API, falling back to
// the local store only when the API is unavailable.
func (s *enquiryService) List(ctx context.Context, query ListQuery) (*EnquiryPage, error) {
	q := strings.TrimSpace(query.Query)
	perPage := models.ParsePerPage(query.PerPage, s.defaultPageSize)
	page := models.ParsePage(query.Page)

	result := s.gateway.List(ctx)
	if result.Available {
		filtered := make([]models.ExternalEnquiry, 0, len(result.Enquiries))
		for _, e := range result.Enquiries {
			if e.Matches(q) {
				filtered = append(filtered, e)
			}
		}

		pagination := models.NewPagination(page, perPage, len(filtered))
		start := pagination.Offset()
		end := min(start+pagination.PerPage, len(filtered))

		metrics.RecordListSource(SourceExternal)
		return &EnquiryPage{
			Source:     SourceExternal,
			External:   filtered[start:end],
			Pagination: pagination,
			Query:      q,
		}, nil
	}

	log.Printf("[ENQUIRY] External list unavailable, using local store: %s", result.Err)

	total, err := s.enquiryRepo.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to count local enquiries: %w", err)
	}

	pagination := models.NewPagination(page, perPage, total)
	enquiries, err := s.enquiryRepo.Search(ctx, q, pagination.PerPage, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to search local enquiries: %w", err)
	}

	metrics.RecordListSource(SourceLocal)
	return &EnquiryPage{
		Source:        SourceLocal,
		ExternalError: result.Err,
		Local:         enquiries,
		Pagination:    pagination,
		Query:         q,
	}, nil
}

// DeleteExternal removes an enquiry held by the external API
func (s *enquiryService) DeleteExternal(ctx context.Context, externalID string) (gateway.DeleteResult, error) {
	result, err := s.gateway.Delete(ctx, externalID)
	if err != nil {
		log.Printf("[ENQUIRY] External delete of %s failed: %v", externalID, err)
	}
	return result, err
}

// GetEnquiry retrieves a local enquiry
func (s *enquiryService) GetEnquiry(ctx context.Context, id int64) (*models.Enquiry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid enquiry ID %d: %w", id, repositories.ErrNotFound)
	}
	return s.enquiryRepo.GetByID(ctx, id)
}

// DeleteLocal removes a local enquiry
func (s *enquiryService) DeleteLocal(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid enquiry ID %d: %w", id, repositories.ErrNotFound)
	}
	return s.enquiryRepo.Delete(ctx, id)
}
