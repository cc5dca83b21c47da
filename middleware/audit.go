package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/blogem/enquiry-desk/models"
	"github.com/blogem/enquiry-desk/repositories"
	"github.com/blogem/enquiry-desk/userctx"
)

const auditWriteTimeout = 5 * time.Second

// AuditLogger middleware logs all POST/PUT/DELETE requests, plus any request
// naming an external enquiry since GET deletes those too
func AuditLogger(auditRepo repositories.AuditRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAuditable(r) {
				entry := &models.AuditLogEntry{
					Timestamp: time.Now().UTC(),
					UserEmail: userctx.GetUserEmail(r.Context()),
					Method:    r.Method,
					Path:      r.URL.Path,
					UserAgent: r.UserAgent(),
					IPAddress: ClientIP(r),
					FormData:  captureFormData(r),
				}

				// Log asynchronously to avoid blocking request
				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
					defer cancel()
					if err := auditRepo.Create(ctx, entry); err != nil {
						log.Printf("[AUDIT] Failed to create audit log: %v", err)
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isAuditable reports whether the request can change data
func isAuditable(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return r.URL.Query().Get("ext_id") != ""
}

// sensitiveFields are never written to the audit log
var sensitiveFields = map[string]bool{
	"password":            true,
	"csrfmiddlewaretoken": true,
}

// captureFormData captures form and query values as a JSON string
func captureFormData(r *http.Request) string {
	if err := r.ParseForm(); err != nil {
		return ""
	}

	formMap := make(map[string]interface{})
	for key, values := range r.Form {
		if sensitiveFields[strings.ToLower(key)] {
			continue
		}
		if len(values) == 1 {
			formMap[key] = values[0]
		} else {
			formMap[key] = values
		}
	}
	if len(formMap) == 0 {
		return ""
	}

	jsonData, err := json.Marshal(formMap)
	if err != nil {
		return ""
	}

	return string(jsonData)
}
