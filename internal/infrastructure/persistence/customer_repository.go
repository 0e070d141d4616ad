package persistence

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/account"
	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements account.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	var customer account.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByUserID finds the customer owned by an identity user
func (r *GormCustomerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Customer, error) {
	var customer account.Customer
	if err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]account.Customer, error) {
	var customers []account.Customer
	query := r.db.WithContext(ctx).Model(&account.Customer{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR phone_number LIKE ?", pattern, pattern, pattern)
	}
	if err := applyFilter(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *account.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// SaveWithLock updates a customer with an optimistic version check.
// The wallet balance only ever changes through this path.
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *account.Customer) error {
	result := r.db.WithContext(ctx).
		Model(customer).
		Where("id = ? AND version = ?", customer.ID, customer.Version-1).
		Updates(map[string]interface{}{
			"first_name":     customer.FirstName,
			"last_name":      customer.LastName,
			"gender":         customer.Gender,
			"phone_number":   customer.PhoneNumber,
			"birth_date":     customer.BirthDate,
			"wallet_balance": customer.WalletBalance,
			"version":        customer.Version,
			"updated_at":     customer.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ account.CustomerRepository = (*GormCustomerRepository)(nil)

// GormSellerRepository implements account.SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Seller, error) {
	var seller account.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &seller, nil
}

// FindByUserID finds the seller owned by an identity user
func (r *GormSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Seller, error) {
	var seller account.Seller
	if err := r.db.WithContext(ctx).First(&seller, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &seller, nil
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, seller *account.Seller) error {
	return r.db.WithContext(ctx).Save(seller).Error
}

var _ account.SellerRepository = (*GormSellerRepository)(nil)

// GormAddressRepository implements account.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Address, error) {
	var address account.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByOwner finds all addresses for an owner
func (r *GormAddressRepository) FindByOwner(ctx context.Context, ownerKind account.OwnerKind, ownerID uuid.UUID) ([]account.Address, error) {
	var addresses []account.Address
	if err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", ownerKind, ownerID).
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *account.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// Delete deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&account.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ account.AddressRepository = (*GormAddressRepository)(nil)
