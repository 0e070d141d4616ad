package persistence

import (
	"context"
	"errors"

	"github.com/bazaar/backend/internal/domain/shared"
	"github.com/bazaar/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTopUpRepository implements wallet.TopUpRepository using GORM
type GormTopUpRepository struct {
	db *gorm.DB
}

// NewGormTopUpRepository creates a new GormTopUpRepository
func NewGormTopUpRepository(db *gorm.DB) *GormTopUpRepository {
	return &GormTopUpRepository{db: db}
}

// FindByID finds a top-up by its ID
func (r *GormTopUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.TopUp, error) {
	var t wallet.TopUp
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByAuthority finds a top-up by its gateway authority
func (r *GormTopUpRepository) FindByAuthority(ctx context.Context, authority string) (*wallet.TopUp, error) {
	var t wallet.TopUp
	if err := r.db.WithContext(ctx).First(&t, "authority = ?", authority).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByCustomer finds all top-ups of a customer, newest first
func (r *GormTopUpRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]wallet.TopUp, error) {
	var topUps []wallet.TopUp
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&topUps).Error; err != nil {
		return nil, err
	}
	return topUps, nil
}

// Save creates or updates a top-up
func (r *GormTopUpRepository) Save(ctx context.Context, t *wallet.TopUp) error {
	return r.db.WithContext(ctx).Save(t).Error
}

var _ wallet.TopUpRepository = (*GormTopUpRepository)(nil)
