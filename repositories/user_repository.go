package repositories

import (
	"context"
	"errors"

	"store-rating/dto"
	"store-rating/models"

	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("duplicate record")

type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, filter dto.UserFilter) ([]models.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Omit("Store").Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return result.Error
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Preload("Store").First(&user, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.User{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *UserRepository) List(ctx context.Context, filter dto.UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Preload("Store.Ratings")
	q = whereContains(q, "name", filter.Name)
	q = whereContains(q, "email", filter.Email)
	q = whereContains(q, "address", filter.Address)
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	var users []models.User
	if err := q.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
