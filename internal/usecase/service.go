package usecase

import (
	"arto/internal/data/repository"
	"arto/pkg/utils"

	"go.uber.org/zap"
)

// MediaStore persists uploaded files and resolves them on disk.
type MediaStore interface {
	Save(dir, filename string, content []byte) (string, error)
	Path(rel string) string
	Remove(rel string) error
}

type Service struct {
	Auth    AuthService
	Artist  ArtistService
	Profile ProfileService
}

func NewService(repo *repository.Repository, media MediaStore, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Artist:  NewArtistService(repo, media, log),
		Profile: NewProfileService(repo, log),
	}
}
