package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"arto/internal/data/entity"
	"arto/internal/data/repository"
	"arto/internal/dto/request"
	"arto/internal/dto/response"
	"arto/pkg/imaging"
	"arto/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	profileImageDir     = "artist_profiles"
	featuredLimit       = 3
	ImageWarningMessage = "Your profile was saved, but the image could not be resized. The original file was kept."
)

// Sample cards shown on the home page until an artist gets verified.
var sampleFeaturedArtists = []response.FeaturedArtist{
	{Name: "Sarah Johnson", Specialty: "Abstract Painter"},
	{Name: "Michael Chen", Specialty: "Digital Artist"},
	{Name: "Emma Rodriguez", Specialty: "Sculptor"},
}

var featuredCategories = []response.Category{
	{Name: "Paintings", Count: 245},
	{Name: "Sculptures", Count: 89},
	{Name: "Digital Art", Count: 156},
	{Name: "Photography", Count: 302},
}

// SaveResult is a persisted artist profile. ImageWarning is set when the
// upload was stored but could not be normalized.
type SaveResult struct {
	Profile      *entity.ArtistProfile
	ImageWarning string
}

type ArtistService interface {
	Home(ctx context.Context) (*response.HomeResponse, error)
	ListArtists(ctx context.Context, specialty string) (*response.ArtistListResponse, error)
	GetArtist(ctx context.Context, profileID, viewerID uuid.UUID) (*response.ArtistDetailResponse, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*entity.ArtistProfile, error)
	BecomeArtistForm(ctx context.Context, userID uuid.UUID) (*request.ArtistProfileRequest, error)
	BecomeArtist(ctx context.Context, userID uuid.UUID, req *request.ArtistProfileRequest, upload *request.ImageUpload) (*SaveResult, error)
	UpdateArtistProfile(ctx context.Context, actorID, profileID uuid.UUID, req *request.ArtistProfileRequest, upload *request.ImageUpload) (*SaveResult, error)
	SetVerified(ctx context.Context, profileID uuid.UUID, verified bool) (*entity.ArtistProfile, error)
}

type artistService struct {
	repo  *repository.Repository
	media MediaStore
	log   *zap.Logger
	now   func() time.Time
}

func NewArtistService(repo *repository.Repository, media MediaStore, log *zap.Logger) ArtistService {
	return &artistService{
		repo:  repo,
		media: media,
		log:   log.With(zap.String("service", "artist")),
		now:   time.Now,
	}
}

func newArtistProfile(userID uuid.UUID, now time.Time) *entity.ArtistProfile {
	return &entity.ArtistProfile{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userID,
		Specialty:       entity.SpecialtyOther,
		ExperienceLevel: entity.ExperienceBeginner,
	}
}

func (s *artistService) Home(ctx context.Context) (*response.HomeResponse, error) {
	verified, err := s.repo.ArtistProfile.FindVerified(ctx, featuredLimit)
	if err != nil {
		s.log.Error("Failed to load featured artists", zap.Error(err))
		return nil, fmt.Errorf("load featured artists: %w", err)
	}

	resp := &response.HomeResponse{
		FeaturedCategories: append([]response.Category(nil), featuredCategories...),
	}

	if len(verified) == 0 {
		resp.FeaturedArtists = append([]response.FeaturedArtist(nil), sampleFeaturedArtists...)
		return resp, nil
	}

	for _, p := range verified {
		resp.FeaturedArtists = append(resp.FeaturedArtists, response.FeaturedArtist{
			Name:      p.ArtistName,
			Specialty: p.Specialty.Label(),
			Profile:   p,
		})
	}
	return resp, nil
}

func (s *artistService) ListArtists(ctx context.Context, specialty string) (*response.ArtistListResponse, error) {
	var filter *entity.Specialty
	selected := ""

	if specialty != "" {
		parsed, ok := entity.ParseSpecialty(specialty)
		if ok {
			filter = &parsed
			selected = string(parsed)
		} else {
			s.log.Warn("Ignoring unrecognized specialty filter", zap.String("specialty", specialty))
		}
	}

	artists, err := s.repo.ArtistProfile.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list artists", zap.Error(err), zap.String("specialty", specialty))
		return nil, fmt.Errorf("list artists: %w", err)
	}

	return &response.ArtistListResponse{
		Artists:           artists,
		Specialties:       entity.Specialties,
		SelectedSpecialty: selected,
	}, nil
}

func (s *artistService) GetArtist(ctx context.Context, profileID, viewerID uuid.UUID) (*response.ArtistDetailResponse, error) {
	profile, err := s.repo.ArtistProfile.FindByID(ctx, profileID)
	if err != nil {
		s.log.Error("Failed to find artist profile", zap.Error(err), zap.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("find artist profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	user, err := s.repo.User.FindByID(ctx, profile.UserID)
	if err != nil {
		s.log.Error("Failed to find artist account", zap.Error(err), zap.String("user_id", profile.UserID.String()))
		return nil, fmt.Errorf("find artist account: %w", err)
	}

	return &response.ArtistDetailResponse{
		Profile:  profile,
		User:     user,
		IsOwner:  viewerID != uuid.Nil && viewerID == profile.UserID,
		Artworks: []any{},
	}, nil
}

func (s *artistService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*entity.ArtistProfile, error) {
	profile, err := s.repo.ArtistProfile.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find artist profile by user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find artist profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotArtist
	}
	return profile, nil
}

func (s *artistService) BecomeArtistForm(ctx context.Context, userID uuid.UUID) (*request.ArtistProfileRequest, error) {
	if err := s.ensureNotArtist(ctx, userID); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	name := user.FullName()
	if name == "" {
		name = user.Username
	}

	return &request.ArtistProfileRequest{
		ArtistName:      name,
		Specialty:       string(entity.SpecialtyOther),
		ExperienceLevel: string(entity.ExperienceBeginner),
	}, nil
}

func (s *artistService) ensureNotArtist(ctx context.Context, userID uuid.UUID) error {
	existing, err := s.repo.ArtistProfile.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to check artist profile", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("check artist profile: %w", err)
	}
	if existing != nil {
		return ErrAlreadyArtist
	}
	return nil
}

func (s *artistService) BecomeArtist(ctx context.Context, userID uuid.UUID, req *request.ArtistProfileRequest, upload *request.ImageUpload) (*SaveResult, error) {
	// 1. Already an artist is an outcome, not a failure
	if err := s.ensureNotArtist(ctx, userID); err != nil {
		return nil, err
	}

	// 2. Validate
	if verr := validateArtistProfile(req, upload); verr.HasErrors() {
		s.log.Warn("Become artist validation failed", zap.Any("errors", verr.Fields))
		return nil, verr
	}

	// 3. Store the upload, then write both records together
	now := s.now()
	profile := newArtistProfile(userID, now)
	applyArtistRequest(profile, req)

	imagePath, err := s.saveUpload(upload)
	if err != nil {
		return nil, err
	}
	profile.ProfileImage = imagePath

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.ArtistProfile.Create(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyArtist
			}
			return err
		}
		return markArtist(ctx, tx, userID, now)
	})
	if err != nil {
		s.discardUpload(imagePath)
		if errors.Is(err, ErrAlreadyArtist) {
			return nil, err
		}
		s.log.Error("Failed to create artist profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("%w: %v", ErrProvisioning, err)
	}

	s.log.Info("Account became artist",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()))

	return &SaveResult{Profile: profile, ImageWarning: s.normalizeImage(profile)}, nil
}

// markArtist gets or creates the account's UserProfile with is_artist set.
func markArtist(ctx context.Context, tx *repository.Repository, userID uuid.UUID, now time.Time) error {
	userProfile, err := tx.UserProfile.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if userProfile == nil {
		return tx.UserProfile.Create(ctx, entity.NewUserProfile(userID, true, now))
	}
	if userProfile.IsArtist {
		return nil
	}
	userProfile.IsArtist = true
	return tx.UserProfile.Update(ctx, userProfile)
}

func (s *artistService) UpdateArtistProfile(ctx context.Context, actorID, profileID uuid.UUID, req *request.ArtistProfileRequest, upload *request.ImageUpload) (*SaveResult, error) {
	// 1. Ownership comes before validation
	profile, err := s.repo.ArtistProfile.FindByID(ctx, profileID)
	if err != nil {
		s.log.Error("Failed to find artist profile", zap.Error(err), zap.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("find artist profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	if profile.UserID != actorID {
		s.log.Warn("Rejected edit of foreign artist profile",
			zap.String("profile_id", profileID.String()),
			zap.String("actor_id", actorID.String()))
		return nil, ErrForbidden
	}

	// 2. Validate; the stored record stays untouched on failure
	if verr := validateArtistProfile(req, upload); verr.HasErrors() {
		s.log.Warn("Artist profile validation failed", zap.Any("errors", verr.Fields))
		return nil, verr
	}

	// 3. Persist
	previousImage := profile.ProfileImage
	updated := *profile
	applyArtistRequest(&updated, req)
	updated.UpdatedAt = s.now()

	newImage, err := s.saveUpload(upload)
	if err != nil {
		return nil, err
	}
	switch {
	case newImage != nil:
		updated.ProfileImage = newImage
	case req.ClearImage:
		updated.ProfileImage = nil
	}

	if err := s.repo.ArtistProfile.Update(ctx, &updated); err != nil {
		s.discardUpload(newImage)
		s.log.Error("Failed to update artist profile", zap.Error(err), zap.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("update artist profile: %w", err)
	}

	if previousImage != nil && (updated.ProfileImage == nil || *updated.ProfileImage != *previousImage) {
		s.discardUpload(previousImage)
	}

	s.log.Info("Artist profile updated", zap.String("profile_id", profileID.String()))

	result := &SaveResult{Profile: &updated}
	if newImage != nil {
		result.ImageWarning = s.normalizeImage(&updated)
	}
	return result, nil
}

func (s *artistService) SetVerified(ctx context.Context, profileID uuid.UUID, verified bool) (*entity.ArtistProfile, error) {
	profile, err := s.repo.ArtistProfile.FindByID(ctx, profileID)
	if err != nil {
		s.log.Error("Failed to find artist profile", zap.Error(err), zap.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("find artist profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.ArtistProfile.SetVerified(ctx, profileID, verified); err != nil {
		s.log.Error("Failed to set verification", zap.Error(err), zap.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("set verified: %w", err)
	}
	profile.IsVerified = verified

	s.log.Info("Artist verification changed",
		zap.String("profile_id", profileID.String()),
		zap.Bool("verified", verified))

	return profile, nil
}

func validateArtistProfile(req *request.ArtistProfileRequest, upload *request.ImageUpload) *utils.ValidationError {
	req.Normalize()
	verr := &utils.ValidationError{}
	for field, msg := range utils.ValidateStruct(req) {
		verr.Add(field, msg)
	}
	if upload != nil {
		if _, err := imaging.DetectFormat(upload.Content); err != nil {
			verr.Add("profile_image", msgInvalidImage)
		}
	}
	return verr
}

func applyArtistRequest(profile *entity.ArtistProfile, req *request.ArtistProfileRequest) {
	profile.ArtistName = strings.TrimSpace(req.ArtistName)
	profile.Bio = req.Bio
	profile.Specialty, _ = entity.ParseSpecialty(req.Specialty)
	profile.ExperienceLevel, _ = entity.ParseExperienceLevel(req.ExperienceLevel)
	profile.Website = strings.TrimSpace(req.Website)
	profile.Instagram = strings.TrimSpace(req.Instagram)
	profile.Facebook = strings.TrimSpace(req.Facebook)
	profile.Twitter = strings.TrimSpace(req.Twitter)
	profile.City = strings.TrimSpace(req.City)
	profile.Country = strings.TrimSpace(req.Country)
	profile.AcceptsCommissions = req.AcceptsCommissions
}

func (s *artistService) saveUpload(upload *request.ImageUpload) (*string, error) {
	if upload == nil {
		return nil, nil
	}
	// the stored name comes from the decoded format, never the client filename
	format, err := imaging.DetectFormat(upload.Content)
	if err != nil {
		return nil, fmt.Errorf("store profile image: %w", err)
	}
	rel, err := s.media.Save(profileImageDir, "profile"+imaging.Extension(format), upload.Content)
	if err != nil {
		s.log.Error("Failed to store profile image", zap.Error(err), zap.String("filename", upload.Filename))
		return nil, fmt.Errorf("store profile image: %w", err)
	}
	return &rel, nil
}

func (s *artistService) discardUpload(rel *string) {
	if rel == nil {
		return
	}
	if err := s.media.Remove(*rel); err != nil {
		s.log.Warn("Failed to remove profile image", zap.Error(err), zap.String("path", *rel))
	}
}

// normalizeImage bounds the stored image to MaxProfileSide. Failures keep
// the original file and are reported as a warning text.
func (s *artistService) normalizeImage(profile *entity.ArtistProfile) string {
	if profile.ProfileImage == nil {
		return ""
	}

	resized, err := imaging.Thumbnail(s.media.Path(*profile.ProfileImage), imaging.MaxProfileSide)
	if err != nil {
		s.log.Warn("Failed to resize profile image",
			zap.Error(err),
			zap.String("profile_id", profile.ID.String()),
			zap.String("path", *profile.ProfileImage))
		return ImageWarningMessage
	}
	if resized {
		s.log.Debug("Profile image resized", zap.String("path", *profile.ProfileImage))
	}
	return ""
}
