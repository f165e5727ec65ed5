package services

import (
	"context"
	"errors"
	"fmt"

	"store-rating/constants"
	"store-rating/dto"
	"store-rating/events"
	"store-rating/models"
	"store-rating/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IAdminService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (uint, error)
	CreateStore(ctx context.Context, input dto.CreateStoreInput) (uint, error)
	ListStores(ctx context.Context, filter dto.StoreFilter) ([]dto.AdminStoreResponse, error)
	ListUsers(ctx context.Context, filter dto.UserFilter) ([]dto.AdminUserResponse, error)
}

type AdminService struct {
	authService      IAuthService
	userRepository   repositories.IUserRepository
	storeRepository  repositories.IStoreRepository
	ratingRepository repositories.IRatingRepository
	publisher        events.Publisher
	log              *zap.Logger
}

func NewAdminService(
	authService IAuthService,
	userRepository repositories.IUserRepository,
	storeRepository repositories.IStoreRepository,
	ratingRepository repositories.IRatingRepository,
	publisher events.Publisher,
	log *zap.Logger,
) IAdminService {
	return &AdminService{
		authService:      authService,
		userRepository:   userRepository,
		storeRepository:  storeRepository,
		ratingRepository: ratingRepository,
		publisher:        publisher,
		log:              log,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	users, err := s.userRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.storeRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Users: users, Stores: stores, Ratings: ratings}, nil
}

func (s *AdminService) CreateUser(ctx context.Context, input dto.CreateUserInput) (uint, error) {
	return s.authService.Register(ctx, input)
}

// CreateStore requires a referenced owner to exist, hold the OWNER role and
// not own another store yet.
func (s *AdminService) CreateStore(ctx context.Context, input dto.CreateStoreInput) (uint, error) {
	if err := validationError(input.Validate()); err != nil {
		return 0, err
	}

	store := models.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
	}

	if input.OwnerID != nil {
		ownerID := uint(*input.OwnerID)
		owner, err := s.userRepository.FindByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fieldError("ownerId", "must reference an existing user")
			}
			return 0, err
		}
		if owner.Role != constants.RoleOwner {
			return 0, fieldError("ownerId", "must reference a user with role OWNER")
		}
		if owner.Store != nil {
			return 0, fmt.Errorf("%w: %s", ErrConflict, constants.ErrOwnerHasStore)
		}
		store.OwnerID = &ownerID
	}

	if err := s.storeRepository.Create(ctx, &store); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return 0, fmt.Errorf("%w: %s", ErrConflict, constants.ErrOwnerHasStore)
		}
		return 0, err
	}

	ev := events.Event{Type: events.TypeStoreCreated, StoreID: store.ID}
	if store.OwnerID != nil {
		ev.UserID = *store.OwnerID
	}
	publish(ctx, s.publisher, s.log, ev)
	return store.ID, nil
}

func (s *AdminService) ListStores(ctx context.Context, filter dto.StoreFilter) ([]dto.AdminStoreResponse, error) {
	stores, err := s.storeRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminStoreResponse, 0, len(stores))
	for _, store := range stores {
		out = append(out, dto.AdminStoreResponse{
			ID:      store.ID,
			Name:    store.Name,
			Email:   store.Email,
			Address: store.Address,
			Rating:  AverageRating(ratingValues(store.Ratings)),
		})
	}
	return out, nil
}

func (s *AdminService) ListUsers(ctx context.Context, filter dto.UserFilter) ([]dto.AdminUserResponse, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, fieldError("role", "must be one of ADMIN, USER, OWNER")
	}

	users, err := s.userRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		row := dto.AdminUserResponse{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Address: user.Address,
			Role:    user.Role,
		}
		if user.Store != nil {
			row.OwnsStore = true
			row.Rating = AverageRating(ratingValues(user.Store.Ratings))
		}
		out = append(out, row)
	}
	return out, nil
}
