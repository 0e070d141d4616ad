package account

import (
	"regexp"
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var postalCodePattern = regexp.MustCompile(`^\d{10}$`)

// Address is a delivery or billing address owned by a customer or a seller
type Address struct {
	shared.BaseAggregateRoot
	OwnerKind  OwnerKind `gorm:"type:varchar(10);not null;index:idx_address_owner"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_address_owner"`
	Province   string    `gorm:"type:varchar(100);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	Street     string    `gorm:"type:text;not null"`
	PostalCode string    `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address for the given owner
func NewAddress(ownerKind OwnerKind, ownerID uuid.UUID, province, city, street, postalCode string) (*Address, error) {
	if !ownerKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_OWNER", "Unknown owner kind")
	}
	if err := validateAddressFields(province, city, street, postalCode); err != nil {
		return nil, err
	}

	return &Address{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerKind:         ownerKind,
		OwnerID:           ownerID,
		Province:          province,
		City:              city,
		Street:            street,
		PostalCode:        postalCode,
	}, nil
}

// Update updates the address fields
func (a *Address) Update(province, city, street, postalCode string) error {
	if err := validateAddressFields(province, city, street, postalCode); err != nil {
		return err
	}

	a.Province = province
	a.City = city
	a.Street = street
	a.PostalCode = postalCode
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// BelongsTo reports whether the address is owned by the given party
func (a *Address) BelongsTo(ownerKind OwnerKind, ownerID uuid.UUID) bool {
	return a.OwnerKind == ownerKind && a.OwnerID == ownerID
}

func validateAddressFields(province, city, street, postalCode string) error {
	if province == "" || city == "" || street == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Province, city, and street are required")
	}
	if !postalCodePattern.MatchString(postalCode) {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code must be exactly 10 digits")
	}
	return nil
}
