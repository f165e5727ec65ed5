package repositories

import (
	"context"
	"errors"
	"time"

	"store-rating/models"

	"gorm.io/gorm"
)

type ITokenRepository interface {
	AddBlacklistedToken(ctx context.Context, token string, expiresAt int64) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) ITokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) AddBlacklistedToken(ctx context.Context, token string, expiresAt int64) error {
	revoked := models.RevokedToken{
		TokenHash: models.HashToken(token),
		ExpiresAt: expiresAt,
	}
	result := r.db.WithContext(ctx).Create(&revoked)
	if result.Error != nil {
		// logging out twice is not an error
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil
		}
		return result.Error
	}
	return nil
}

func (r *TokenRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	var revoked models.RevokedToken
	result := r.db.WithContext(ctx).Where("token_hash = ?", models.HashToken(token)).First(&revoked)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// CleanExpiredTokens deletes entries whose token has expired anyway.
func (r *TokenRepository) CleanExpiredTokens(ctx context.Context) (int64, error) {
	now := time.Now().Unix()
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.RevokedToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
