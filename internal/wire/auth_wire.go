package wire

import (
	"net/http"

	"arto/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, limiter func(http.Handler) http.Handler) {
	r.Get("/register/", authHandler.RegisterPage)
	r.With(limiter).Post("/register/", authHandler.Register)

	r.Get(loginPath, authHandler.LoginPage)
	r.With(limiter).Post(loginPath, authHandler.Login)

	r.Get("/logout/", authHandler.Logout)
	r.Post("/logout/", authHandler.Logout)
}
