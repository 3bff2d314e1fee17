package adaptor

import (
	"net/http"

	"arto/internal/usecase"
	"arto/pkg/view"
)

type HomeHandler struct {
	web
	artists  usecase.ArtistService
	profiles usecase.ProfileService
}

func NewHomeHandler(artists usecase.ArtistService, profiles usecase.ProfileService, base web) *HomeHandler {
	return &HomeHandler{
		web:      base,
		artists:  artists,
		profiles: profiles,
	}
}

// Home handles GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.artists.Home(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "load home page")
		return
	}

	h.render(w, r, http.StatusOK, "home", &view.Page{Data: home})
}

// Dashboard handles GET /dashboard/
func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.profiles.Dashboard(r.Context(), currentUserID(r))
	if err != nil {
		h.handleServiceError(w, r, err, "load dashboard")
		return
	}

	h.render(w, r, http.StatusOK, "dashboard", &view.Page{
		Title: "Dashboard",
		Data:  dashboard,
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}
