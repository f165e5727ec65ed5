package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"store-rating/constants"
	"store-rating/dto"
	"store-rating/events"
	"store-rating/metrics"
	"store-rating/models"
	"store-rating/repositories"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the payload of every issued bearer token.
type Claims struct {
	UserID uint           `json:"userId"`
	Role   constants.Role `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      dto.UserSummary
}

type IAuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (uint, error)
	// Register creates a user with the given role (USER when empty).
	Register(ctx context.Context, input dto.CreateUserInput) (uint, error)
	Login(ctx context.Context, input dto.LoginInput) (*LoginResult, error)
	ChangePassword(ctx context.Context, caller *Claims, input dto.ChangePasswordInput) error
	Authenticate(ctx context.Context, tokenString string) (*Claims, error)
	Logout(ctx context.Context, tokenString string, claims *Claims) error
}

type AuthService struct {
	repository      repositories.IUserRepository
	tokenRepository repositories.ITokenRepository
	publisher       events.Publisher
	secret          []byte
	tokenTTL        time.Duration
	log             *zap.Logger
}

func NewAuthService(
	repository repositories.IUserRepository,
	tokenRepository repositories.ITokenRepository,
	publisher events.Publisher,
	secret []byte,
	tokenTTL time.Duration,
	log *zap.Logger,
) IAuthService {
	return &AuthService{
		repository:      repository,
		tokenRepository: tokenRepository,
		publisher:       publisher,
		secret:          secret,
		tokenTTL:        tokenTTL,
		log:             log,
	}
}

func (s *AuthService) Signup(ctx context.Context, input dto.SignupInput) (uint, error) {
	if err := validationError(input.Validate()); err != nil {
		return 0, err
	}
	return s.Register(ctx, dto.CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Address:  input.Address,
		Password: input.Password,
		Role:     constants.RoleUser,
	})
}

func (s *AuthService) Register(ctx context.Context, input dto.CreateUserInput) (uint, error) {
	if input.Role == "" {
		input.Role = constants.RoleUser
	}
	if err := validationError(input.Validate()); err != nil {
		return 0, err
	}

	_, err := s.repository.FindByEmail(ctx, input.Email)
	if err == nil {
		return 0, fmt.Errorf("%w: %s", ErrConflict, constants.ErrEmailExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Address:      input.Address,
		Role:         input.Role,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repository.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return 0, fmt.Errorf("%w: %s", ErrConflict, constants.ErrEmailExists)
		}
		return 0, err
	}

	metrics.RecordUserCreated(user.Role.String())
	s.publish(ctx, events.Event{Type: events.TypeUserRegistered, UserID: user.ID, Role: user.Role.String()})
	return user.ID, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*LoginResult, error) {
	if err := validationError(input.Validate()); err != nil {
		return nil, err
	}

	foundUser, err := s.repository.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordLogin(false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(input.Password)); err != nil {
		metrics.RecordLogin(false)
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.CreateToken(foundUser.ID, foundUser.Role, expiresAt)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(true)
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: dto.UserSummary{
			ID:   foundUser.ID,
			Name: foundUser.Name,
			Role: foundUser.Role,
		},
	}, nil
}

func (s *AuthService) CreateToken(userID uint, role constants.Role, expiresAt time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ChangePassword overwrites the stored hash. Only the account holder or an
// administrator may do so, and that is checked before the new password is
// validated. The previous password is not required.
func (s *AuthService) ChangePassword(ctx context.Context, caller *Claims, input dto.ChangePasswordInput) error {
	if caller == nil {
		return ErrUnauthorized
	}
	if input.UserID != int64(caller.UserID) && caller.Role != constants.RoleAdmin {
		return ErrForbidden
	}
	if err := validationError(input.Validate()); err != nil {
		return err
	}
	target := uint(input.UserID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repository.UpdatePasswordHash(ctx, target, string(hashedPassword)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, constants.ErrUserNotFound)
		}
		return err
	}
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !claims.Role.Valid() || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: malformed claims", ErrUnauthorized)
	}

	isBlacklisted, err := s.tokenRepository.IsTokenBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, fmt.Errorf("%w: token is blacklisted", ErrUnauthorized)
	}
	return claims, nil
}

// Logout blacklists the token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, tokenString string, claims *Claims) error {
	expiresAt := time.Now().Add(s.tokenTTL).Unix()
	if claims != nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Unix()
	}
	return s.tokenRepository.AddBlacklistedToken(ctx, tokenString, expiresAt)
}

func (s *AuthService) publish(ctx context.Context, ev events.Event) {
	publish(ctx, s.publisher, s.log, ev)
}
