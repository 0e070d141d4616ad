package account

import (
	"fmt"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OwnerKind discriminates the two parties that can own an address
type OwnerKind string

const (
	OwnerKindCustomer OwnerKind = "customer"
	OwnerKindSeller   OwnerKind = "seller"
)

// IsValid returns true if the kind is known
func (k OwnerKind) IsValid() bool {
	return k == OwnerKindCustomer || k == OwnerKindSeller
}

// Owner is a tagged union holding exactly one of Customer or Seller
type Owner struct {
	customer *Customer
	seller   *Seller
}

// CustomerOwner wraps a customer as an owner
func CustomerOwner(c *Customer) Owner {
	return Owner{customer: c}
}

// SellerOwner wraps a seller as an owner
func SellerOwner(s *Seller) Owner {
	return Owner{seller: s}
}

// Kind returns which variant the owner holds
func (o Owner) Kind() OwnerKind {
	if o.customer != nil {
		return OwnerKindCustomer
	}
	return OwnerKindSeller
}

// ID returns the ID of the underlying party
func (o Owner) ID() uuid.UUID {
	if o.customer != nil {
		return o.customer.ID
	}
	if o.seller != nil {
		return o.seller.ID
	}
	return uuid.Nil
}

// Customer returns the customer variant, or nil
func (o Owner) Customer() *Customer {
	return o.customer
}

// Seller returns the seller variant, or nil
func (o Owner) Seller() *Seller {
	return o.seller
}

// DisplayName renders the owner for invoices and shipping labels.
// Customers show as "First Last", sellers as their company name.
func (o Owner) DisplayName() string {
	switch {
	case o.customer != nil:
		return fmt.Sprintf("%s %s", o.customer.FirstName, o.customer.LastName)
	case o.seller != nil:
		return o.seller.CompanyName
	default:
		return ""
	}
}

// Validate ensures exactly one variant is set
func (o Owner) Validate() error {
	if (o.customer == nil) == (o.seller == nil) {
		return shared.NewDomainError("INVALID_OWNER", "Owner must hold exactly one of customer or seller")
	}
	return nil
}
