package services

import (
	"context"
	"errors"
	"fmt"

	"store-rating/constants"
	"store-rating/dto"
	"store-rating/repositories"

	"gorm.io/gorm"
)

type IOwnerService interface {
	StoreRatings(ctx context.Context, ownerID uint) (*dto.OwnerRatingsResponse, error)
}

type OwnerService struct {
	storeRepository repositories.IStoreRepository
}

func NewOwnerService(storeRepository repositories.IStoreRepository) IOwnerService {
	return &OwnerService{storeRepository: storeRepository}
}

func (s *OwnerService) StoreRatings(ctx context.Context, ownerID uint) (*dto.OwnerRatingsResponse, error) {
	store, err := s.storeRepository.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.ErrNoStoreForOwner)
		}
		return nil, err
	}

	raters := make([]dto.RaterResponse, 0, len(store.Ratings))
	for _, r := range store.Ratings {
		raters = append(raters, dto.RaterResponse{
			ID:    r.User.ID,
			Name:  r.User.Name,
			Email: r.User.Email,
			Value: r.Value,
		})
	}

	return &dto.OwnerRatingsResponse{
		Store:         dto.StoreSummary{ID: store.ID, Name: store.Name},
		AverageRating: AverageRating(ratingValues(store.Ratings)),
		Raters:        raters,
	}, nil
}
