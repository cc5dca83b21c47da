package services

import (
	"github.com/blogem/enquiry-desk/gateway"
	"github.com/blogem/enquiry-desk/repositories"
)

// Services holds all service instances
type Services struct {
	Enquiry EnquiryService
	Auth    AuthService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, client gateway.Client, defaultPageSize int) *Services {
	return &Services{
		Enquiry: NewEnquiryService(client, repos.Enquiry, defaultPageSize),
		Auth:    NewAuthService(repos.AdminUser),
	}
}
