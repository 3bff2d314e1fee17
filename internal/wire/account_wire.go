package wire

import (
	"arto/internal/adaptor"
	"arto/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAccount(r chi.Router, accountHandler *adaptor.AccountHandler) {
	r.Route("/account", func(r chi.Router) {
		r.Use(middleware.RequireLogin(loginPath))

		r.Get("/profile/", accountHandler.ProfilePage)
		r.Post("/profile/", accountHandler.UpdateProfile)
	})
}
