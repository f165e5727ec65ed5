package repositories

import (
	"context"

	"store-rating/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IRatingRepository interface {
	// Upsert creates the (user, store) rating or overwrites its value.
	Upsert(ctx context.Context, rating models.Rating) (*models.Rating, error)
	Count(ctx context.Context) (int64, error)
}

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) IRatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Upsert(ctx context.Context, rating models.Rating) (*models.Rating, error) {
	var saved models.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rating)
		if result.Error != nil {
			return result.Error
		}
		return tx.First(&saved, "user_id = ? AND store_id = ?", rating.UserID, rating.StoreID).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
