package services

import (
	"context"
	"errors"
	"fmt"

	"store-rating/constants"
	"store-rating/dto"
	"store-rating/events"
	"store-rating/metrics"
	"store-rating/models"
	"store-rating/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IUserService interface {
	ListStores(ctx context.Context, userID uint, query dto.UserStoreQuery) ([]dto.UserStoreResponse, error)
	SubmitRating(ctx context.Context, userID uint, input dto.RateInput) (*dto.RatingResponse, error)
}

type UserService struct {
	storeRepository  repositories.IStoreRepository
	ratingRepository repositories.IRatingRepository
	publisher        events.Publisher
	log              *zap.Logger
}

func NewUserService(
	storeRepository repositories.IStoreRepository,
	ratingRepository repositories.IRatingRepository,
	publisher events.Publisher,
	log *zap.Logger,
) IUserService {
	return &UserService{
		storeRepository:  storeRepository,
		ratingRepository: ratingRepository,
		publisher:        publisher,
		log:              log,
	}
}

func (s *UserService) ListStores(ctx context.Context, userID uint, query dto.UserStoreQuery) ([]dto.UserStoreResponse, error) {
	stores, err := s.storeRepository.List(ctx, dto.StoreFilter{Name: query.QName, Address: query.QAddress})
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserStoreResponse, 0, len(stores))
	for _, store := range stores {
		out = append(out, dto.UserStoreResponse{
			ID:            store.ID,
			Name:          store.Name,
			Address:       store.Address,
			AverageRating: AverageRating(ratingValues(store.Ratings)),
			MyRating:      MyRating(store.Ratings, userID),
		})
	}
	return out, nil
}

// SubmitRating creates or overwrites the caller's rating for a store.
func (s *UserService) SubmitRating(ctx context.Context, userID uint, input dto.RateInput) (*dto.RatingResponse, error) {
	if err := validationError(input.Validate()); err != nil {
		return nil, err
	}

	storeID := uint(input.StoreID)
	if _, err := s.storeRepository.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.ErrStoreNotFound)
		}
		return nil, err
	}

	rating, err := s.ratingRepository.Upsert(ctx, models.Rating{
		UserID:  userID,
		StoreID: storeID,
		Value:   input.Value,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRating(rating.Value)
	publish(ctx, s.publisher, s.log, events.Event{
		Type:    events.TypeRatingSubmitted,
		UserID:  userID,
		StoreID: storeID,
		Value:   rating.Value,
	})
	return &dto.RatingResponse{ID: rating.ID, Value: rating.Value}, nil
}
