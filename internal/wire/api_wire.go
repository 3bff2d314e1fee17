package wire

import (
	"arto/internal/adaptor"
	"arto/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func wireAPI(r chi.Router, apiHandler *adaptor.APIHandler, config *utils.Config) {
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.Get("/artists", apiHandler.ListArtists)
		r.Get("/artists/{pk}", apiHandler.GetArtist)
	})
}
