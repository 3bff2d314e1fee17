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
	"arto/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const birthDateLayout = "2006-01-02"

type ProfileService interface {
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*response.DashboardResponse, error)
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, req *request.UserProfileRequest) (*entity.UserProfile, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log.With(zap.String("service", "profile")),
		now:  time.Now,
	}
}

func (s *profileService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *profileService) Dashboard(ctx context.Context, userID uuid.UUID) (*response.DashboardResponse, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// presence of the artist profile decides the account type
	artist, err := s.repo.ArtistProfile.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find artist profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find artist profile: %w", err)
	}

	userProfile, err := s.getOrCreate(ctx, userID, artist != nil)
	if err != nil {
		return nil, err
	}

	resp := &response.DashboardResponse{
		User:          user,
		UserProfile:   userProfile,
		ArtistProfile: artist,
		IsArtist:      artist != nil,
		RecentActivities: []response.Activity{
			{Action: "Profile updated", Item: "Personal information", Time: "2 hours ago"},
			{Action: "Joined ARTO", Item: "Welcome to the community!", Time: "1 day ago"},
		},
	}

	if resp.IsArtist {
		resp.RecentActivities = append([]response.Activity{
			{Action: "Artist profile created", Item: "Ready to upload artworks", Time: "Recently"},
		}, resp.RecentActivities...)
	}

	return resp, nil
}

func (s *profileService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	artist, err := s.repo.ArtistProfile.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find artist profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find artist profile: %w", err)
	}
	return s.getOrCreate(ctx, userID, artist != nil)
}

func (s *profileService) UpdateUserProfile(ctx context.Context, userID uuid.UUID, req *request.UserProfileRequest) (*entity.UserProfile, error) {
	verr := &utils.ValidationError{}
	for field, msg := range utils.ValidateStruct(req) {
		verr.Add(field, msg)
	}

	var birthDate *time.Time
	if _, bad := verr.Fields["birth_date"]; !bad && strings.TrimSpace(req.BirthDate) != "" {
		parsed, err := time.Parse(birthDateLayout, strings.TrimSpace(req.BirthDate))
		if err != nil {
			verr.Add("birth_date", "Enter a valid date.")
		} else if parsed.After(s.now()) {
			verr.Add("birth_date", msgFutureBirth)
		} else {
			birthDate = &parsed
		}
	}

	if verr.HasErrors() {
		s.log.Warn("User profile validation failed", zap.Any("errors", verr.Fields))
		return nil, verr
	}

	profile, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Phone = strings.TrimSpace(req.Phone)
	profile.Address = strings.TrimSpace(req.Address)
	profile.BirthDate = birthDate
	profile.NewsletterSubscription = req.NewsletterSubscription

	if err := s.repo.UserProfile.Update(ctx, profile); err != nil {
		s.log.Error("Failed to update user profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update user profile: %w", err)
	}

	s.log.Info("User profile updated", zap.String("user_id", userID.String()))
	return profile, nil
}

// getOrCreate returns the account's UserProfile, creating it when missing.
// A concurrent create that wins the race is read back.
func (s *profileService) getOrCreate(ctx context.Context, userID uuid.UUID, isArtist bool) (*entity.UserProfile, error) {
	profile, err := s.repo.UserProfile.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = entity.NewUserProfile(userID, isArtist, s.now())
	err = s.repo.UserProfile.Create(ctx, profile)
	if errors.Is(err, repository.ErrDuplicate) {
		return s.repo.UserProfile.FindByUserID(ctx, userID)
	}
	if err != nil {
		s.log.Error("Failed to create user profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create user profile: %w", err)
	}

	s.log.Info("User profile created lazily", zap.String("user_id", userID.String()))
	return profile, nil
}
