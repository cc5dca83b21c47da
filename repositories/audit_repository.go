package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/enquiry-desk/database"
	"github.com/blogem/enquiry-desk/models"
)

// AuditRepository handles audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}

type auditRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB, dialect database.Dialect) AuditRepository {
	return &auditRepository{db: db, dialect: dialect}
}

// Create inserts a new audit log entry
func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO audit_log (timestamp, user_email, method, path, form_data, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		r.dialect.Rebind(query),
		entry.Timestamp,
		entry.UserEmail,
		entry.Method,
		entry.Path,
		entry.FormData,
		entry.UserAgent,
		entry.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}
