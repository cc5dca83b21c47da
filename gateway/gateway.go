// Package gateway mediates every call to the third-party enquiry API and
// normalizes its inconsistent replies into one shape.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/metrics"
	"github.com/blogem/enquiry-desk/models"
)

// Endpoint paths relative to the configured base URL
const (
	submitPath = "enquiry"
	listPath   = "getEnquiry"
	deletePath = "deleteEnquiry/"
)

// NetworkFailureCode is the message code reported when the API could not be reached
const NetworkFailureCode = -1

// maxBodyBytes caps how much of a reply body is read
const maxBodyBytes = 1 << 20

// Client defines the operations offered by the external enquiry API
type Client interface {
	Submit(ctx context.Context, req SubmitRequest) Response
	List(ctx context.Context) ListResult
	Delete(ctx context.Context, externalID string) (DeleteResult, error)
}

// SubmitRequest carries the enquiry fields sent to the external API
type SubmitRequest struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// Response is the normalized reply of the external API
type Response struct {
	MessageCode    *int   `json:"message_code"`
	MessageText    string `json:"message_text"`
	MessageData    []any  `json:"message_data"`
	ExternalStatus *int   `json:"external_status"`
}

// Failed reports whether the external reply signals an upstream failure
func (r Response) Failed() bool {
	return r.ExternalStatus != nil && *r.ExternalStatus >= http.StatusBadRequest
}

// ListResult is the outcome of listing external enquiries. Available is false
// only when the API could not be used; an empty list is still available.
type ListResult struct {
	Available bool
	Enquiries []models.ExternalEnquiry
	Err       string
}

// DeleteResult is the outcome of the delete verb sequence
type DeleteResult struct {
	Success      bool
	ResponseText string
	Attempts     []string
}

// HTTPClient talks to the external enquiry API over HTTP
type HTTPClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewHTTPClient creates a gateway client from configuration
func NewHTTPClient(cfg config.GatewayConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Submit sends an enquiry. It never fails: every outcome, including network
// errors, is folded into the returned Response.
func (c *HTTPClient) Submit(ctx context.Context, req SubmitRequest) Response {
	start := time.Now()
	endpoint := c.baseURL + submitPath

	payload := map[string]any{
		"Firstname": req.FirstName,
		"Lastname":  req.LastName,
		"PhoneNo":   coercePhone(req.Phone),
		"Email":     req.Email,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return c.submitFailure(start, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return c.submitFailure(start, err)
	}
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("User-Agent", c.userAgent)

	status, respBody, err := c.do(httpReq)
	if err != nil {
		return c.submitFailure(start, err)
	}

	// 406 means the API wants form encoding
	if status == http.StatusNotAcceptable {
		log.Printf("[GATEWAY] Submit got 406, retrying form-encoded")
		form := url.Values{
			"Firstname": {req.FirstName},
			"Lastname":  {req.LastName},
			"PhoneNo":   {req.Phone},
			"Email":     {req.Email},
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return c.submitFailure(start, err)
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		httpReq.Header.Set("User-Agent", c.userAgent)

		status, respBody, err = c.do(httpReq)
		if err != nil {
			return c.submitFailure(start, err)
		}
	}

	resp := normalizeResponse(respBody)
	resp.ExternalStatus = &status

	outcome := "success"
	if resp.Failed() {
		outcome = "http_error"
	}
	metrics.RecordGatewayCall("submit", outcome, time.Since(start))
	log.Printf("[GATEWAY] Submit finished: status=%d code=%s", status, formatCode(resp.MessageCode))
	return resp
}

func (c *HTTPClient) submitFailure(start time.Time, err error) Response {
	log.Printf("[GATEWAY] Submit failed: %v", err)
	metrics.RecordGatewayCall("submit", "network_error", time.Since(start))
	code := NetworkFailureCode
	return Response{
		MessageCode: &code,
		MessageText: fmt.Sprintf("Failed to send enquiry: %v", err),
		MessageData: []any{},
	}
}

// List fetches all external enquiries. Failures are reported through
// ListResult, never as an error.
func (c *HTTPClient) List(ctx context.Context) ListResult {
	start := time.Now()

	enquiries, err := c.list(ctx)
	if err != nil {
		log.Printf("[GATEWAY] List failed: %v", err)
		metrics.RecordGatewayCall("list", "error", time.Since(start))
		return ListResult{Available: false, Err: err.Error()}
	}

	metrics.RecordGatewayCall("list", "success", time.Since(start))
	return ListResult{Available: true, Enquiries: enquiries}
}

func (c *HTTPClient) list(ctx context.Context) ([]models.ExternalEnquiry, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listPath, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	status, body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%d %s for url: %s", status, http.StatusText(status), httpReq.URL)
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON in enquiry list: %w", err)
	}

	return toExternalEnquiries(extractList(decoded)), nil
}

// Delete removes an external enquiry, trying DELETE, GET and POST in that
// order and stopping at the first 2xx. A network error aborts the sequence.
func (c *HTTPClient) Delete(ctx context.Context, externalID string) (DeleteResult, error) {
	start := time.Now()
	endpoint := c.baseURL + deletePath + url.PathEscape(externalID)

	var result DeleteResult
	for _, method := range []string{http.MethodDelete, http.MethodGet, http.MethodPost} {
		httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			metrics.RecordGatewayCall("delete", "network_error", time.Since(start))
			return result, err
		}
		httpReq.Header.Set("User-Agent", c.userAgent)

		result.Attempts = append(result.Attempts, method)
		status, body, err := c.do(httpReq)
		if err != nil {
			log.Printf("[GATEWAY] Delete %s aborted on %s: %v", externalID, method, err)
			metrics.RecordGatewayCall("delete", "network_error", time.Since(start))
			return result, fmt.Errorf("%s %s: %w", method, endpoint, err)
		}

		result.ResponseText = string(body)
		if isSuccess(status) {
			result.Success = true
			log.Printf("[GATEWAY] Delete %s succeeded with %s", externalID, method)
			metrics.RecordGatewayCall("delete", "success", time.Since(start))
			return result, nil
		}
		log.Printf("[GATEWAY] Delete %s with %s returned %d", externalID, method, status)
	}

	metrics.RecordGatewayCall("delete", "http_error", time.Since(start))
	return result, nil
}

// do executes a request and reads the body
func (c *HTTPClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// coercePhone sends the phone as an integer when it is one
func coercePhone(phone string) any {
	if n, err := strconv.ParseInt(strings.TrimSpace(phone), 10, 64); err == nil {
		return n
	}
	return phone
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func formatCode(code *int) string {
	if code == nil {
		return "null"
	}
	return strconv.Itoa(*code)
}
