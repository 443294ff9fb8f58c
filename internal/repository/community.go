package repository

import (
	"context"

	"github.com/thready-lab/backend/internal/entity"
	"github.com/thready-lab/backend/pkg/xcontext"
)

type CommunityRepository interface {
	Create(ctx context.Context, data *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetList(ctx context.Context) ([]entity.Community, error)
}

type communityRepository struct {
}

func NewCommunityRepository() CommunityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, data *entity.Community) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var record entity.Community
	err := xcontext.DB(ctx).
		Preload("Moderators").
		Where("id=?", id).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetList(ctx context.Context) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Preload("Moderators").
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
