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

// WelcomeBio seeds the bio of artist profiles created at registration.
const WelcomeBio = "Welcome to ARTO! Add your bio here."

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, meta request.SessionMeta) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta request.SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to its account; (nil, nil) when the
	// token is unknown, expired, revoked or the account is inactive.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta request.SessionMeta) (*response.AuthResponse, error) {
	// 1. Field rules, password policy and username availability, all before any write
	verr := &utils.ValidationError{}
	for field, msg := range utils.ValidateStruct(req) {
		verr.Add(field, msg)
	}

	if _, mismatch := verr.Fields["password2"]; !mismatch && req.Password1 != "" {
		problems := utils.PasswordProblems(req.Password1, req.Username, req.FirstName, req.LastName, req.Email)
		if len(problems) > 0 {
			verr.Add("password2", strings.Join(problems, " "))
		}
	}

	if _, bad := verr.Fields["username"]; !bad {
		existing, err := s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			verr.Add("username", msgUsernameTaken)
		}
	}

	if verr.HasErrors() {
		s.log.Warn("Register validation failed", zap.Any("errors", verr.Fields))
		return nil, verr
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password1, s.config.App.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Account and profiles in one transaction
	now := s.now()
	accountType := req.AccountType()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}

		isArtist := accountType == entity.AccountTypeArtist
		if isArtist {
			artist := newArtistProfile(user.ID, now)
			artist.ArtistName = fmt.Sprintf("%s %s", user.FirstName, user.LastName)
			artist.Bio = WelcomeBio
			if err := tx.ArtistProfile.Create(ctx, artist); err != nil {
				return err
			}
		}

		return tx.UserProfile.Create(ctx, entity.NewUserProfile(user.ID, isArtist, now))
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) && isUsernameRace(ctx, s.repo, req.Username) {
			s.log.Warn("Username taken during registration", zap.String("username", req.Username))
			return nil, utils.NewValidationError("username", msgUsernameTaken)
		}
		s.log.Error("Failed to provision account",
			zap.Error(err),
			zap.String("username", req.Username),
			zap.String("account_type", string(accountType)),
		)
		return nil, fmt.Errorf("%w: %v", ErrProvisioning, err)
	}

	// 4. Log the new account in
	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Continue without session
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("account_type", string(accountType)))

	return response.AuthToResponse(user, accountType, session), nil
}

// isUsernameRace tells a username collision apart from other unique
// violations after a failed provisioning transaction.
func isUsernameRace(ctx context.Context, repo *repository.Repository, username string) bool {
	existing, err := repo.User.FindByUsername(ctx, username)
	return err == nil && existing != nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta request.SessionMeta) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	// 2. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Unknown user, wrong password and inactive account look the same to the caller
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Create session
	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	accountType := entity.AccountTypeBuyer
	artist, err := s.repo.ArtistProfile.FindByUserID(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to resolve account type", zap.Error(err), zap.String("user_id", user.ID.String()))
	} else if artist != nil {
		accountType = entity.AccountTypeArtist
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return response.AuthToResponse(user, accountType, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		// nothing to revoke
		s.log.Debug("Logout with malformed token")
		return nil
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}

	return user, nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("Expired sessions cleaned", zap.Int64("removed", removed))
	return removed, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta request.SessionMeta) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(s.config.Session.TTL()),
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
