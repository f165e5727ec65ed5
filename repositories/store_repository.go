package repositories

import (
	"context"
	"errors"

	"store-rating/dto"
	"store-rating/models"

	"gorm.io/gorm"
)

type IStoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uint) (*models.Store, error)
	// FindByOwner loads the owner's store with every rating and its rater.
	FindByOwner(ctx context.Context, ownerID uint) (*models.Store, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, filter dto.StoreFilter) ([]models.Store, error)
}

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) IStoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	result := r.db.WithContext(ctx).Omit("Ratings").Create(store)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return result.Error
	}
	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	result := r.db.WithContext(ctx).First(&store, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &store, nil
}

func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID uint) (*models.Store, error) {
	var store models.Store
	result := r.db.WithContext(ctx).Preload("Ratings.User").First(&store, "owner_id = ?", ownerID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &store, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *StoreRepository) List(ctx context.Context, filter dto.StoreFilter) ([]models.Store, error) {
	q := r.db.WithContext(ctx).Model(&models.Store{}).Preload("Ratings")
	q = whereContains(q, "name", filter.Name)
	q = whereContains(q, "email", filter.Email)
	q = whereContains(q, "address", filter.Address)

	var stores []models.Store
	if err := q.Order("id").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}
