package models

import "time"

// AuditLogEntry records one mutating admin request
type AuditLogEntry struct {
	ID        int64     `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	UserEmail string    `json:"user_email" db:"user_email"`
	Method    string    `json:"method" db:"method"`
	Path      string    `json:"path" db:"path"`
	FormData  string    `json:"form_data" db:"form_data"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
}
