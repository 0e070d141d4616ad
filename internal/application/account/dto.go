package account

import (
	"time"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/google/uuid"
)

// UpdateProfileRequest fills in the customer's personal information
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Gender      string `json:"gender" binding:"omitempty,oneof=m f"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD, optional
}

// CustomerResponse is the API representation of a customer profile
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Gender          string    `json:"gender,omitempty"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	BirthDate       *string   `json:"birth_date,omitempty"`
	WalletBalance   string    `json:"wallet_balance"`
	ProfileComplete bool      `json:"profile_complete"`
	CreatedAt       time.Time `json:"created_at"`
}

// AddressRequest creates or updates an address
type AddressRequest struct {
	Province   string `json:"province" binding:"required"`
	City       string `json:"city" binding:"required"`
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// AddressResponse is the API representation of an address
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	Province   string    `json:"province"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
}

// RegisterSellerRequest creates a seller for the calling user
type RegisterSellerRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
}

// UpdateSellerRequest updates a seller's contact details
type UpdateSellerRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender" binding:"omitempty,oneof=m f"`
	PhoneNumber string `json:"phone_number"`
}

// SellerResponse is the API representation of a seller
type SellerResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCustomerResponse maps a customer to its API representation
func ToCustomerResponse(c *account.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Gender:          string(c.Gender),
		PhoneNumber:     c.PhoneNumber,
		WalletBalance:   c.WalletBalance.Amount().String(),
		ProfileComplete: c.HasCompleteProfile(),
		CreatedAt:       c.CreatedAt,
	}
	if c.BirthDate != nil {
		s := c.BirthDate.Format("2006-01-02")
		resp.BirthDate = &s
	}
	return resp
}

// ToSellerResponse maps a seller to its API representation
func ToSellerResponse(s *account.Seller) *SellerResponse {
	return &SellerResponse{
		ID:          s.ID,
		CompanyName: s.CompanyName,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Gender:      string(s.Gender),
		PhoneNumber: s.PhoneNumber,
		CreatedAt:   s.CreatedAt,
	}
}

// ToAddressResponse maps an address to its API representation
func ToAddressResponse(a *account.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Province:   a.Province,
		City:       a.City,
		Street:     a.Street,
		PostalCode: a.PostalCode,
	}
}
