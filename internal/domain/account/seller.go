package account

import (
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Seller represents a merchant selling through the marketplace
type Seller struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName string    `gorm:"type:varchar(200);not null"`
	FirstName   string    `gorm:"type:varchar(100)"`
	LastName    string    `gorm:"type:varchar(100)"`
	Gender      Gender    `gorm:"type:varchar(1)"`
	PhoneNumber string    `gorm:"type:varchar(20);index"`
}

// TableName returns the table name for GORM
func (Seller) TableName() string {
	return "sellers"
}

// NewSeller creates a new seller
func NewSeller(userID uuid.UUID, companyName string) (*Seller, error) {
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	return &Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		CompanyName:       companyName,
	}, nil
}

// UpdateProfile updates the seller's contact details
func (s *Seller) UpdateProfile(companyName, firstName, lastName string, gender Gender, phoneNumber string) error {
	if companyName == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if gender != "" && !gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Gender must be m or f")
	}
	if phoneNumber != "" && !phonePattern.MatchString(phoneNumber) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be 11 digits starting with 0")
	}

	s.CompanyName = companyName
	s.FirstName = firstName
	s.LastName = lastName
	s.Gender = gender
	s.PhoneNumber = phoneNumber
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
