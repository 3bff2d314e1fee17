package adaptor

import (
	"arto/internal/usecase"
	"arto/pkg/flash"
	"arto/pkg/utils"
	"arto/pkg/view"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Home    *HomeHandler
	Artist  *ArtistHandler
	Account *AccountHandler
	API     *APIHandler
}

func NewHandler(service *usecase.Service, renderer *view.Renderer, flashes *flash.Store, config *utils.Config, log *zap.Logger) *Handler {
	base := web{
		view:  renderer,
		flash: flashes,
		log:   log.With(zap.String("component", "handler")),
	}

	return &Handler{
		Auth:    NewAuthHandler(service.Auth, base, config.Session),
		Home:    NewHomeHandler(service.Artist, service.Profile, base),
		Artist:  NewArtistHandler(service.Artist, base),
		Account: NewAccountHandler(service.Profile, base),
		API:     NewAPIHandler(service.Artist, config.Media.URL, log),
	}
}
