package wire

import (
	"arto/internal/adaptor"
	"arto/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireHome(r chi.Router, homeHandler *adaptor.HomeHandler) {
	r.Get("/", homeHandler.Home)
	r.With(middleware.RequireLogin(loginPath)).Get("/dashboard/", homeHandler.Dashboard)
}
