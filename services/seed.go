package services

import (
	"context"
	"errors"

	"store-rating/constants"
	"store-rating/dto"
)

// SeedAdmin creates the bootstrap administrator unless the email is taken.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, authService IAuthService, input dto.CreateUserInput) (bool, error) {
	input.Role = constants.RoleAdmin
	if _, err := authService.Register(ctx, input); err != nil {
		if errors.Is(err, ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
