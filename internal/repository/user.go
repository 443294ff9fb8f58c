package repository

import (
	"context"

	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Upsert(ctx context.Context, data *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByShopifyCustomerID(ctx context.Context, customerID string) (*entity.User, error)
}

type userRepository struct {
}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

// Upsert inserts the user keyed by the provider customer id, refreshing the
// profile fields on every login. The profile image is not in the update list
// because the login flow never carries one and an existing image must survive
// relogins. Concurrent callbacks for the same customer converge on one row,
// so the canonical record is re-read after the write.
func (r *userRepository) Upsert(ctx context.Context, data *entity.User) (*entity.User, error) {
	err := xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "username",
			"avatar_color", "community_id", "updated_at",
		}),
	}).Create(data).Error
	if err != nil {
		return nil, err
	}

	return r.GetByShopifyCustomerID(ctx, data.ShopifyCustomerID)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByShopifyCustomerID(
	ctx context.Context, customerID string,
) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).
		Where("shopify_customer_id=?", customerID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}
