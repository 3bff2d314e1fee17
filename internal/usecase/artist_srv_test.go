package usecase

import (
	"context"
	"image"
	"os"
	"strings"
	"testing"
	"time"

	"arto/internal/data/entity"
	"arto/internal/dto/request"
	"arto/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBecomeArtistTransition(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "bob", "Bob", "Stone", "buyer"))

	form, err := env.service.Artist.BecomeArtistForm(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Stone", form.ArtistName)

	result, err := env.service.Artist.BecomeArtist(ctx, userID, validArtistRequest("Bob Paints"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bob Paints", result.Profile.ArtistName)
	assert.Equal(t, entity.SpecialtyPainter, result.Profile.Specialty)
	assert.Empty(t, result.ImageWarning)

	profile, err := env.repo.UserProfile.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, profile.IsArtist)

	// second attempt is an informational no-op
	_, err = env.service.Artist.BecomeArtist(ctx, userID, validArtistRequest("Again"), nil)
	assert.ErrorIs(t, err, ErrAlreadyArtist)
	_, err = env.service.Artist.BecomeArtistForm(ctx, userID)
	assert.ErrorIs(t, err, ErrAlreadyArtist)

	artists, err := env.repo.ArtistProfile.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Bob Paints", artists[0].ArtistName)
}

func TestBecomeArtistCreatesMissingUserProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     "legacy",
		IsActive:     true,
	}
	require.NoError(t, env.repo.User.Create(ctx, user))

	form, err := env.service.Artist.BecomeArtistForm(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "legacy", form.ArtistName)

	_, err = env.service.Artist.BecomeArtist(ctx, user.ID, validArtistRequest("Legacy"), nil)
	require.NoError(t, err)

	profile, err := env.repo.UserProfile.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.IsArtist)
}

func TestBecomeArtistValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "bob", "Bob", "Stone", "buyer"))

	req := validArtistRequest("")
	req.Specialty = "sculpture"
	_, err := env.service.Artist.BecomeArtist(ctx, userID, req, nil)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "artist_name")
	assert.Contains(t, verr.Fields, "specialty")

	artist, err := env.repo.ArtistProfile.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, artist)

	profile, err := env.repo.UserProfile.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.False(t, profile.IsArtist)
}

func TestArtistNameOfOnlySpacesIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, userID)
	require.NoError(t, err)

	_, err = env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, validArtistRequest("   "), nil)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "artist_name")

	stored, err := env.repo.ArtistProfile.FindByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ArtistName, stored.ArtistName)
	assert.NotEmpty(t, stored.ArtistName)
}

func TestUpdateArtistProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, userID)
	require.NoError(t, err)

	req := validArtistRequest("Ana L.")
	req.AcceptsCommissions = true
	result, err := env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana L.", result.Profile.ArtistName)

	stored, err := env.repo.ArtistProfile.FindByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana L.", stored.ArtistName)
	assert.Equal(t, "Lisbon, Portugal", stored.Location())
	assert.True(t, stored.AcceptsCommissions)
	assert.Equal(t, own.CreatedAt, stored.CreatedAt)
}

func TestUpdateArtistProfileRejectsLongBio(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, userID)
	require.NoError(t, err)

	req := validArtistRequest("Ana Lee")
	req.Bio = strings.Repeat("a", 501)
	_, err = env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, req, nil)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "bio")

	stored, err := env.repo.ArtistProfile.FindByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Equal(t, WelcomeBio, stored.Bio)
}

func TestUpdateArtistProfileChecksOwnershipFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	otherID := uuid.MustParse(env.register(t, "bob", "Bob", "Stone", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, ownerID)
	require.NoError(t, err)

	// invalid input still reports forbidden
	req := validArtistRequest("")
	req.Bio = strings.Repeat("a", 501)
	_, err = env.service.Artist.UpdateArtistProfile(ctx, otherID, own.ID, req, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.service.Artist.UpdateArtistProfile(ctx, ownerID, uuid.New(), validArtistRequest("x"), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateArtistProfileDownscalesUpload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, userID)
	require.NoError(t, err)

	result, err := env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, validArtistRequest("Ana Lee"), pngUpload(t, 1200, 800))
	require.NoError(t, err)
	assert.Empty(t, result.ImageWarning)
	require.NotNil(t, result.Profile.ProfileImage)
	assert.True(t, strings.HasPrefix(*result.Profile.ProfileImage, "artist_profiles/"))

	f, err := os.Open(env.media.Path(*result.Profile.ProfileImage))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)

	// replacing the image removes the previous file
	first := *result.Profile.ProfileImage
	result, err = env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, validArtistRequest("Ana Lee"), pngUpload(t, 50, 50))
	require.NoError(t, err)
	assert.NotEqual(t, first, *result.Profile.ProfileImage)
	_, err = os.Stat(env.media.Path(first))
	assert.True(t, os.IsNotExist(err))

	// clearing drops the reference and the file
	second := *result.Profile.ProfileImage
	req := validArtistRequest("Ana Lee")
	req.ClearImage = true
	result, err = env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, req, nil)
	require.NoError(t, err)
	assert.Nil(t, result.Profile.ProfileImage)
	_, err = os.Stat(env.media.Path(second))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadExtensionFollowsDetectedFormat(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, userID)
	require.NoError(t, err)

	upload := pngUpload(t, 40, 40)
	upload.Filename = "x.html"
	result, err := env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, validArtistRequest("Ana Lee"), upload)
	require.NoError(t, err)
	require.NotNil(t, result.Profile.ProfileImage)
	assert.True(t, strings.HasSuffix(*result.Profile.ProfileImage, ".png"))
	assert.NotContains(t, *result.Profile.ProfileImage, "html")
}

func TestUpdateArtistProfileRejectsNonImage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, userID)
	require.NoError(t, err)

	upload := &request.ImageUpload{Filename: "notes.png", Content: []byte("hello")}
	_, err = env.service.Artist.UpdateArtistProfile(ctx, userID, own.ID, validArtistRequest("Ana Lee"), upload)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgInvalidImage, verr.Fields["profile_image"])

	stored, err := env.repo.ArtistProfile.FindByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ProfileImage)
}

func TestGetOwnProfileForBuyer(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.MustParse(env.register(t, "bob", "Bob", "Stone", "buyer"))

	_, err := env.service.Artist.GetOwnProfile(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNotArtist)
}

func TestListArtists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	anaID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "buyer"))
	bobID := uuid.MustParse(env.register(t, "bob", "Bob", "Stone", "buyer"))
	carlID := uuid.MustParse(env.register(t, "carl", "Carl", "Moss", "buyer"))

	painter := validArtistRequest("Ana Paints")
	_, err := env.service.Artist.BecomeArtist(ctx, anaID, painter, nil)
	require.NoError(t, err)

	sculptor := validArtistRequest("Bob Carves")
	sculptor.Specialty = "sculptor"
	_, err = env.service.Artist.BecomeArtist(ctx, bobID, sculptor, nil)
	require.NoError(t, err)

	_, err = env.service.Artist.BecomeArtist(ctx, carlID, validArtistRequest("Carl Paints"), nil)
	require.NoError(t, err)

	painters, err := env.service.Artist.ListArtists(ctx, "painter")
	require.NoError(t, err)
	assert.Equal(t, "painter", painters.SelectedSpecialty)
	require.Len(t, painters.Artists, 2)
	assert.Equal(t, "Carl Paints", painters.Artists[0].ArtistName)
	assert.Equal(t, "Ana Paints", painters.Artists[1].ArtistName)

	all, err := env.service.Artist.ListArtists(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Artists, 3)
	assert.Len(t, all.Specialties, len(entity.Specialties))

	unknown, err := env.service.Artist.ListArtists(ctx, "juggler")
	require.NoError(t, err)
	assert.Len(t, unknown.Artists, 3)
	assert.Empty(t, unknown.SelectedSpecialty)

	photographers, err := env.service.Artist.ListArtists(ctx, "photographer")
	require.NoError(t, err)
	assert.Empty(t, photographers.Artists)
}

func TestGetArtist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ownerID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	own, err := env.service.Artist.GetOwnProfile(ctx, ownerID)
	require.NoError(t, err)

	detail, err := env.service.Artist.GetArtist(ctx, own.ID, ownerID)
	require.NoError(t, err)
	assert.True(t, detail.IsOwner)
	assert.Equal(t, "ana", detail.User.Username)
	assert.NotNil(t, detail.Artworks)
	assert.Empty(t, detail.Artworks)

	anon, err := env.service.Artist.GetArtist(ctx, own.ID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, anon.IsOwner)

	_, err = env.service.Artist.GetArtist(ctx, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHomeFeaturedArtists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	home, err := env.service.Artist.Home(ctx)
	require.NoError(t, err)
	require.Len(t, home.FeaturedArtists, 3)
	assert.Equal(t, "Sarah Johnson", home.FeaturedArtists[0].Name)
	assert.Nil(t, home.FeaturedArtists[0].Profile)
	require.Len(t, home.FeaturedCategories, 4)
	assert.Equal(t, 302, home.FeaturedCategories[3].Count)

	ownerID := uuid.MustParse(env.register(t, "ana", "Ana", "Lee", "artist"))
	env.register(t, "bob", "Bob", "Stone", "artist")
	own, err := env.service.Artist.GetOwnProfile(ctx, ownerID)
	require.NoError(t, err)

	verified, err := env.service.Artist.SetVerified(ctx, own.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	home, err = env.service.Artist.Home(ctx)
	require.NoError(t, err)
	require.Len(t, home.FeaturedArtists, 1)
	assert.Equal(t, "Ana Lee", home.FeaturedArtists[0].Name)
	assert.Equal(t, "Other", home.FeaturedArtists[0].Specialty)

	_, err = env.service.Artist.SetVerified(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}
