package services

import (
	"context"
	"testing"
	"time"

	"store-rating/constants"
	"store-rating/dto"
	"store-rating/events"
	"store-rating/models"
	"store-rating/repositories"
	"store-rating/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	publisher *testutil.RecordingPublisher
	auth      IAuthService
	admin     IAdminService
	user      IUserService
	owner     IOwnerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	tokenDB := testutil.NewTokenDB(t)
	publisher := &testutil.RecordingPublisher{}
	log := zap.NewNop()

	userRepository := repositories.NewUserRepository(db)
	storeRepository := repositories.NewStoreRepository(db)
	ratingRepository := repositories.NewRatingRepository(db)
	tokenRepository := repositories.NewTokenRepository(tokenDB)

	auth := NewAuthService(userRepository, tokenRepository, publisher, []byte(testutil.JWTSecret), time.Hour, log)
	return &fixture{
		db:        db,
		publisher: publisher,
		auth:      auth,
		admin:     NewAdminService(auth, userRepository, storeRepository, ratingRepository, publisher, log),
		user:      NewUserService(storeRepository, ratingRepository, publisher, log),
		owner:     NewOwnerService(storeRepository),
	}
}

func (f *fixture) createUser(t *testing.T, email string, role constants.Role) uint {
	t.Helper()

	id, err := f.auth.Register(context.Background(), dto.CreateUserInput{
		Name:     testutil.ValidName,
		Email:    email,
		Address:  testutil.ValidAddress,
		Password: testutil.ValidPassword,
		Role:     role,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) createStore(t *testing.T, name, address string, ownerID *uint) uint {
	t.Helper()

	in := dto.CreateStoreInput{Name: name, Address: address}
	if ownerID != nil {
		id := int64(*ownerID)
		in.OwnerID = &id
	}
	id, err := f.admin.CreateStore(context.Background(), in)
	require.NoError(t, err)
	return id
}

func (f *fixture) login(t *testing.T, email string) *Claims {
	t.Helper()

	ctx := context.Background()
	res, err := f.auth.Login(ctx, dto.LoginInput{Email: email, Password: testutil.ValidPassword})
	require.NoError(t, err)
	claims, err := f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	return claims
}

func TestSignup(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	in := dto.SignupInput{
		Name:     testutil.ValidName,
		Email:    "jane@example.com",
		Address:  testutil.ValidAddress,
		Password: testutil.ValidPassword,
	}

	id, err := f.auth.Signup(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, id)

	var user models.User
	require.NoError(t, f.db.First(&user, id).Error)
	assert.Equal(t, constants.RoleUser, user.Role)
	assert.NotEqual(t, testutil.ValidPassword, user.PasswordHash)

	_, err = f.auth.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrConflict)

	in.Email = "other@example.com"
	in.Name = "too short"
	_, err = f.auth.Signup(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "name", verr.Fields[0].Field)

	registered := f.publisher.OfType(events.TypeUserRegistered)
	require.Len(t, registered, 1)
	assert.Equal(t, id, registered[0].UserID)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.createUser(t, "owner@example.com", constants.RoleOwner)

	res, err := f.auth.Login(ctx, dto.LoginInput{Email: "owner@example.com", Password: testutil.ValidPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, dto.UserSummary{ID: id, Name: testutil.ValidName, Role: constants.RoleOwner}, res.User)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	claims, err := f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, constants.RoleOwner, claims.Role)

	_, err = f.auth.Login(ctx, dto.LoginInput{Email: "owner@example.com", Password: "Wrong-pass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: testutil.ValidPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.createUser(t, "jane@example.com", constants.RoleUser)

	svc := f.auth.(*AuthService)
	expired, err := svc.CreateToken(id, constants.RoleUser, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.auth.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := NewAuthService(nil, nil, nil, []byte("another-secret"), time.Hour, zap.NewNop()).(*AuthService)
	forged, err := other.CreateToken(id, constants.RoleAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_BlacklistsToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "jane@example.com", constants.RoleUser)

	res, err := f.auth.Login(ctx, dto.LoginInput{Email: "jane@example.com", Password: testutil.ValidPassword})
	require.NoError(t, err)
	claims, err := f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, res.Token, claims))
	require.NoError(t, f.auth.Logout(ctx, res.Token, claims), "second logout is a no-op")

	_, err = f.auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	janeID := f.createUser(t, "jane@example.com", constants.RoleUser)
	f.createUser(t, "john@example.com", constants.RoleUser)
	f.createUser(t, "admin@example.com", constants.RoleAdmin)

	jane := f.login(t, "jane@example.com")
	john := f.login(t, "john@example.com")
	admin := f.login(t, "admin@example.com")

	err := f.auth.ChangePassword(ctx, john, dto.ChangePasswordInput{UserID: int64(janeID), NewPassword: "N3w-Secret"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.auth.ChangePassword(ctx, john, dto.ChangePasswordInput{UserID: int64(janeID), NewPassword: "weak"})
	assert.ErrorIs(t, err, ErrForbidden, "authorization is checked before the password format")

	err = f.auth.ChangePassword(ctx, jane, dto.ChangePasswordInput{UserID: int64(janeID), NewPassword: "weak"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.auth.ChangePassword(ctx, jane, dto.ChangePasswordInput{UserID: int64(janeID), NewPassword: "N3w-Secret"}))
	_, err = f.auth.Login(ctx, dto.LoginInput{Email: "jane@example.com", Password: testutil.ValidPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, dto.LoginInput{Email: "jane@example.com", Password: "N3w-Secret"})
	assert.NoError(t, err)

	require.NoError(t, f.auth.ChangePassword(ctx, admin, dto.ChangePasswordInput{UserID: int64(janeID), NewPassword: "Adm1n-Set"}))

	err = f.auth.ChangePassword(ctx, admin, dto.ChangePasswordInput{UserID: 9999, NewPassword: "Adm1n-Set"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRating_Upserts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	userID := f.createUser(t, "jane@example.com", constants.RoleUser)
	storeID := f.createStore(t, "Corner Coffee", "1 Main Street", nil)

	first, err := f.user.SubmitRating(ctx, userID, dto.RateInput{StoreID: int64(storeID), Value: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Value)

	second, err := f.user.SubmitRating(ctx, userID, dto.RateInput{StoreID: int64(storeID), Value: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, second.Value)
	assert.Equal(t, first.ID, second.ID)

	dash, err := f.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dash.Ratings)

	_, err = f.user.SubmitRating(ctx, userID, dto.RateInput{StoreID: int64(storeID), Value: 6})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.user.SubmitRating(ctx, userID, dto.RateInput{StoreID: 424242, Value: 4})
	assert.ErrorIs(t, err, ErrNotFound)

	submitted := f.publisher.OfType(events.TypeRatingSubmitted)
	require.Len(t, submitted, 2)
	assert.Equal(t, 5, submitted[1].Value)
	assert.Equal(t, storeID, submitted[1].StoreID)
}

func TestUserListStores(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	jane := f.createUser(t, "jane@example.com", constants.RoleUser)
	john := f.createUser(t, "john@example.com", constants.RoleUser)
	coffee := f.createStore(t, "Corner Coffee", "1 Main Street", nil)
	f.createStore(t, "Coffee Roasters", "9 Side Road", nil)
	f.createStore(t, "Book Nook", "12 Main Street", nil)

	_, err := f.user.SubmitRating(ctx, jane, dto.RateInput{StoreID: int64(coffee), Value: 4})
	require.NoError(t, err)
	_, err = f.user.SubmitRating(ctx, john, dto.RateInput{StoreID: int64(coffee), Value: 5})
	require.NoError(t, err)

	all, err := f.user.ListStores(ctx, jane, dto.UserStoreQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := f.user.ListStores(ctx, jane, dto.UserStoreQuery{QName: "Coffee", QAddress: "Main"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	row := filtered[0]
	assert.Equal(t, coffee, row.ID)
	require.NotNil(t, row.AverageRating)
	assert.Equal(t, 4.5, *row.AverageRating)
	require.NotNil(t, row.MyRating)
	assert.Equal(t, 4, *row.MyRating)

	nook, err := f.user.ListStores(ctx, jane, dto.UserStoreQuery{QName: "Nook"})
	require.NoError(t, err)
	require.Len(t, nook, 1)
	assert.Nil(t, nook[0].AverageRating)
	assert.Nil(t, nook[0].MyRating)

	none, err := f.user.ListStores(ctx, jane, dto.UserStoreQuery{QName: "100%"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateStore_OwnerChecks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ownerID := f.createUser(t, "owner@example.com", constants.RoleOwner)
	plainID := f.createUser(t, "jane@example.com", constants.RoleUser)

	email := "shop@example.com"
	owner := int64(ownerID)
	storeID, err := f.admin.CreateStore(ctx, dto.CreateStoreInput{Name: "Corner Coffee", Email: &email, Address: "1 Main Street", OwnerID: &owner})
	require.NoError(t, err)
	assert.NotZero(t, storeID)

	_, err = f.admin.CreateStore(ctx, dto.CreateStoreInput{Name: "Second Shop", Address: "2 Main Street", OwnerID: &owner})
	assert.ErrorIs(t, err, ErrConflict)

	plain := int64(plainID)
	_, err = f.admin.CreateStore(ctx, dto.CreateStoreInput{Name: "Third Shop", OwnerID: &plain})
	assert.ErrorIs(t, err, ErrValidation)

	missing := int64(9999)
	_, err = f.admin.CreateStore(ctx, dto.CreateStoreInput{Name: "Fourth Shop", OwnerID: &missing})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.admin.CreateStore(ctx, dto.CreateStoreInput{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	created := f.publisher.OfType(events.TypeStoreCreated)
	require.Len(t, created, 1)
	assert.Equal(t, ownerID, created[0].UserID)
}

func TestAdminListings(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ownerID := f.createUser(t, "owner@example.com", constants.RoleOwner)
	emptyOwnerID := f.createUser(t, "owner2@example.com", constants.RoleOwner)
	userID := f.createUser(t, "jane@example.com", constants.RoleUser)
	storeID := f.createStore(t, "Corner Coffee", "1 Main Street", &ownerID)
	f.createStore(t, "Empty Shop", "5 Main Street", &emptyOwnerID)

	_, err := f.user.SubmitRating(ctx, userID, dto.RateInput{StoreID: int64(storeID), Value: 2})
	require.NoError(t, err)

	dash, err := f.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardResponse{Users: 3, Stores: 2, Ratings: 1}, *dash)

	stores, err := f.admin.ListStores(ctx, dto.StoreFilter{Address: "Main"})
	require.NoError(t, err)
	require.Len(t, stores, 2)
	require.NotNil(t, stores[0].Rating)
	assert.Equal(t, 2.0, *stores[0].Rating)
	assert.Nil(t, stores[1].Rating)

	users, err := f.admin.ListUsers(ctx, dto.UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 3)
	byID := map[uint]dto.AdminUserResponse{}
	for _, u := range users {
		byID[u.ID] = u
	}
	assert.True(t, byID[ownerID].OwnsStore)
	require.NotNil(t, byID[ownerID].Rating)
	assert.Equal(t, 2.0, *byID[ownerID].Rating)
	assert.True(t, byID[emptyOwnerID].OwnsStore)
	assert.Nil(t, byID[emptyOwnerID].Rating)
	assert.False(t, byID[userID].OwnsStore)

	owners, err := f.admin.ListUsers(ctx, dto.UserFilter{Role: constants.RoleOwner, Email: "owner2"})
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, emptyOwnerID, owners[0].ID)

	_, err = f.admin.ListUsers(ctx, dto.UserFilter{Role: "ROOT"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOwnerStoreRatings(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ownerID := f.createUser(t, "owner@example.com", constants.RoleOwner)
	lonelyID := f.createUser(t, "lonely@example.com", constants.RoleOwner)
	userID := f.createUser(t, "jane@example.com", constants.RoleUser)
	storeID := f.createStore(t, "Corner Coffee", "1 Main Street", &ownerID)

	_, err := f.owner.StoreRatings(ctx, lonelyID)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := f.owner.StoreRatings(ctx, ownerID)
	require.NoError(t, err)
	assert.Nil(t, empty.AverageRating)
	assert.NotNil(t, empty.Raters)
	assert.Empty(t, empty.Raters)

	_, err = f.user.SubmitRating(ctx, userID, dto.RateInput{StoreID: int64(storeID), Value: 4})
	require.NoError(t, err)

	res, err := f.owner.StoreRatings(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, dto.StoreSummary{ID: storeID, Name: "Corner Coffee"}, res.Store)
	require.NotNil(t, res.AverageRating)
	assert.Equal(t, 4.0, *res.AverageRating)
	assert.Equal(t, []dto.RaterResponse{{ID: userID, Name: testutil.ValidName, Email: "jane@example.com", Value: 4}}, res.Raters)
}

func TestSeedAdmin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	in := dto.CreateUserInput{
		Name:     testutil.ValidName,
		Email:    "admin@example.com",
		Address:  testutil.ValidAddress,
		Password: testutil.ValidPassword,
	}

	created, err := SeedAdmin(ctx, f.auth, in)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, f.auth, in)
	require.NoError(t, err)
	assert.False(t, created)

	claims := f.login(t, "admin@example.com")
	assert.Equal(t, constants.RoleAdmin, claims.Role)
}
