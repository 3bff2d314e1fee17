package wire

import (
	"arto/internal/adaptor"
	"arto/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireArtist(r chi.Router, artistHandler *adaptor.ArtistHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/artists/", artistHandler.List)
	r.Get("/artist/{pk}/", artistHandler.View)

	// ==================== OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin(loginPath))

		r.Get("/artist/edit/", artistHandler.EditPage)
		r.Post("/artist/edit/", artistHandler.Edit)
		r.Get("/become-artist/", artistHandler.BecomeArtistPage)
		r.Post("/become-artist/", artistHandler.BecomeArtist)
	})

	// ==================== STAFF ROUTES ====================
	r.Route("/admin/artists/{pk}", func(r chi.Router) {
		r.Use(middleware.Admin(log))

		r.Post("/verify", artistHandler.Verify)
		r.Post("/unverify", artistHandler.Unverify)
	})
}
