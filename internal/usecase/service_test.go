package usecase

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"arto/internal/data/repository"
	"arto/internal/dto/request"
	"arto/pkg/storage"
	"arto/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Sunflower-Canvas-42"

type testEnv struct {
	repo    *repository.Repository
	media   *storage.MediaStore
	service *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	media, err := storage.NewMediaStore(t.TempDir())
	require.NoError(t, err)

	config := &utils.Config{
		App:     utils.AppConfig{BcryptCost: bcrypt.MinCost},
		Session: utils.SessionConfig{ExpiryHours: 1},
	}
	repo := repository.NewMemoryRepository(zap.NewNop())

	return &testEnv{
		repo:    repo,
		media:   media,
		service: NewService(repo, media, config, zap.NewNop()),
	}
}

func registerRequest(username, first, last, userType string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: first,
		LastName:  last,
		Password1: testPassword,
		Password2: testPassword,
		UserType:  userType,
	}
}

func validArtistRequest(name string) *request.ArtistProfileRequest {
	return &request.ArtistProfileRequest{
		ArtistName:      name,
		Bio:             "Oil on canvas.",
		Specialty:       "painter",
		ExperienceLevel: "intermediate",
		Website:         "https://example.com",
		City:            "Lisbon",
		Country:         "Portugal",
	}
}

func pngUpload(t *testing.T, w, h int) *request.ImageUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &request.ImageUpload{Filename: "portrait.png", Content: buf.Bytes()}
}

func (e *testEnv) register(t *testing.T, username, first, last, userType string) string {
	t.Helper()
	resp, err := e.service.Auth.Register(context.Background(), registerRequest(username, first, last, userType), request.SessionMeta{})
	require.NoError(t, err)
	return resp.UserID
}
