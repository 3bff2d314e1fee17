package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"arto/internal/data/entity"
	"arto/internal/data/repository"
	"arto/internal/dto/request"
	"arto/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type failingUserProfiles struct {
	repository.UserProfileRepository
	err error
}

func (f failingUserProfiles) Create(context.Context, *entity.UserProfile) error {
	return f.err
}

func TestRegisterArtistProvisionsBothProfiles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.service.Auth.Register(ctx, registerRequest("ana", "Ana", "Lee", "artist"), request.SessionMeta{UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, entity.AccountTypeArtist, resp.AccountType)
	assert.NotEmpty(t, resp.Token)

	user, err := env.repo.User.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, testPassword, user.PasswordHash)

	artist, err := env.repo.ArtistProfile.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, artist)
	assert.Equal(t, "Ana Lee", artist.ArtistName)
	assert.Equal(t, WelcomeBio, artist.Bio)
	assert.Equal(t, entity.SpecialtyOther, artist.Specialty)
	assert.False(t, artist.IsVerified)

	profile, err := env.repo.UserProfile.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.IsArtist)

	authed, err := env.service.Auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	require.NotNil(t, authed)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegisterBuyerByDefault(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.service.Auth.Register(ctx, registerRequest("bob", "Bob", "Stone", ""), request.SessionMeta{})
	require.NoError(t, err)
	assert.Equal(t, entity.AccountTypeBuyer, resp.AccountType)

	userID := uuid.MustParse(resp.UserID)
	profile, err := env.repo.UserProfile.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.False(t, profile.IsArtist)

	artist, err := env.repo.ArtistProfile.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, artist)
}

func TestRegisterDuplicateUsernameCreatesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	firstID := env.register(t, "ana", "Ana", "Lee", "artist")

	_, err := env.service.Auth.Register(ctx, registerRequest("ana", "Other", "Person", "artist"), request.SessionMeta{})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgUsernameTaken, verr.Fields["username"])

	user, err := env.repo.User.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, firstID, user.ID.String())

	artists, err := env.repo.ArtistProfile.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, artists, 1)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*request.RegisterRequest)
		field  string
	}{
		"password mismatch": {
			mutate: func(r *request.RegisterRequest) { r.Password2 = "Different-Canvas-42" },
			field:  "password2",
		},
		"numeric password": {
			mutate: func(r *request.RegisterRequest) { r.Password1, r.Password2 = "90817263", "90817263" },
			field:  "password2",
		},
		"password like username": {
			mutate: func(r *request.RegisterRequest) { r.Password1, r.Password2 = "carolina1999", "carolina1999" },
			field:  "password2",
		},
		"bad account type": {
			mutate: func(r *request.RegisterRequest) { r.UserType = "gallery" },
			field:  "user_type",
		},
		"bad email": {
			mutate: func(r *request.RegisterRequest) { r.Email = "not-an-email" },
			field:  "email",
		},
		"bad username": {
			mutate: func(r *request.RegisterRequest) { r.Username = "has space" },
			field:  "username",
		},
		"missing last name": {
			mutate: func(r *request.RegisterRequest) { r.LastName = "" },
			field:  "last_name",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			req := registerRequest("carolina", "Carol", "Ines", "buyer")
			tc.mutate(req)

			_, err := env.service.Auth.Register(ctx, req, request.SessionMeta{})
			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)

			user, err := env.repo.User.FindByUsername(ctx, req.Username)
			require.NoError(t, err)
			assert.Nil(t, user)
		})
	}
}

func TestRegisterRollsBackWhenProfileWriteFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.repo.UserProfile = failingUserProfiles{
		UserProfileRepository: env.repo.UserProfile,
		err:                   errors.New("disk full"),
	}

	_, err := env.service.Auth.Register(ctx, registerRequest("ana", "Ana", "Lee", "artist"), request.SessionMeta{})
	assert.ErrorIs(t, err, ErrProvisioning)

	user, err := env.repo.User.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, user)

	artists, err := env.repo.ArtistProfile.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "ana", "Ana", "Lee", "artist")

	resp, err := env.service.Auth.Login(ctx, &request.LoginRequest{Username: "ana", Password: testPassword}, request.SessionMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.DisplayName)
	assert.Equal(t, entity.AccountTypeArtist, resp.AccountType)

	user, err := env.repo.User.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "ana", "Ana", "Lee", "buyer")

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, env.repo.User.Create(ctx, &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     "dormant",
		PasswordHash: string(hash),
		IsActive:     false,
	}))

	attempts := []request.LoginRequest{
		{Username: "nobody", Password: testPassword},
		{Username: "ana", Password: "wrong-password"},
		{Username: "dormant", Password: testPassword},
	}
	for _, attempt := range attempts {
		_, err := env.service.Auth.Login(ctx, &attempt, request.SessionMeta{})
		assert.ErrorIs(t, err, ErrInvalidCredentials, attempt.Username)
	}

	_, err = env.service.Auth.Login(ctx, &request.LoginRequest{Username: "ana"}, request.SessionMeta{})
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.service.Auth.Register(ctx, registerRequest("ana", "Ana", "Lee", "buyer"), request.SessionMeta{})
	require.NoError(t, err)

	require.NoError(t, env.service.Auth.Logout(ctx, resp.Token))
	user, err := env.service.Auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, env.service.Auth.Logout(ctx, "garbage"))
	assert.NoError(t, env.service.Auth.Logout(ctx, resp.Token))
}

func TestAuthenticateRejectsUnknownTokens(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.service.Auth.Authenticate(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = env.service.Auth.Authenticate(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, user)
}
