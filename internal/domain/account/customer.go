package account

import (
	"regexp"
	"time"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Gender uses the single-letter codes from the storefront data model
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

// IsValid returns true if the gender code is known
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

var phonePattern = regexp.MustCompile(`^0\d{10}$`)

// Customer represents a buyer with a store wallet
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	FirstName     string            `gorm:"type:varchar(100)"`
	LastName      string            `gorm:"type:varchar(100)"`
	Gender        Gender            `gorm:"type:varchar(1)"`
	PhoneNumber   string            `gorm:"type:varchar(20);index"`
	BirthDate     *time.Time        `gorm:"type:date"`
	WalletBalance valueobject.Money `gorm:"type:decimal(18,0);not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer shell for a newly registered user.
// Profile fields are filled in later by the customer.
func NewCustomer(userID uuid.UUID) *Customer {
	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		WalletBalance:     valueobject.ZeroIRR(),
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer
}

// UpdateProfile updates the customer's personal information
func (c *Customer) UpdateProfile(firstName, lastName string, gender Gender, phoneNumber string, birthDate *time.Time) error {
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if gender != "" && !gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Gender must be m or f")
	}
	if phoneNumber != "" && !phonePattern.MatchString(phoneNumber) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be 11 digits starting with 0")
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Gender = gender
	c.PhoneNumber = phoneNumber
	c.BirthDate = birthDate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// HasCompleteProfile reports whether the customer can check out.
// First name, last name, birth date, and gender are all required.
func (c *Customer) HasCompleteProfile() bool {
	return c.FirstName != "" && c.LastName != "" && c.BirthDate != nil && c.Gender.IsValid()
}

// DebitWallet withdraws the amount from the wallet.
// The balance never goes negative.
func (c *Customer) DebitWallet(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}

	enough, err := c.WalletBalance.GreaterThanOrEqual(amount)
	if err != nil {
		return shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}
	if !enough {
		return shared.ErrInsufficientBalance
	}

	balance, err := c.WalletBalance.Subtract(amount)
	if err != nil {
		return shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}

	c.WalletBalance = balance
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewWalletDebitedEvent(c, amount))

	return nil
}

// CreditWallet deposits the amount into the wallet
func (c *Customer) CreditWallet(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	balance, err := c.WalletBalance.Add(amount)
	if err != nil {
		return shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}

	c.WalletBalance = balance
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewWalletCreditedEvent(c, amount))

	return nil
}
