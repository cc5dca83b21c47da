package repositories

import (
	"database/sql"

	"github.com/blogem/enquiry-desk/database"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Enquiry   EnquiryRepository
	AdminUser AdminUserRepository
	Audit     AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB, dialect database.Dialect) *Repositories {
	return &Repositories{
		Enquiry:   NewEnquiryRepository(db, dialect),
		AdminUser: NewAdminUserRepository(db, dialect),
		Audit:     NewAuditRepository(db, dialect),
	}
}
