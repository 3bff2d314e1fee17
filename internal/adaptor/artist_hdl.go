package adaptor

import (
	"errors"
	"net/http"

	"arto/internal/dto/request"
	"arto/internal/usecase"
	"arto/pkg/flash"
	"arto/pkg/utils"
	"arto/pkg/view"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ArtistHandler struct {
	web
	service usecase.ArtistService
}

func NewArtistHandler(service usecase.ArtistService, base web) *ArtistHandler {
	return &ArtistHandler{
		web:     base,
		service: service,
	}
}

// List handles GET /artists/?specialty=
func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListArtists(r.Context(), r.URL.Query().Get("specialty"))
	if err != nil {
		h.handleServiceError(w, r, err, "list artists")
		return
	}

	h.render(w, r, http.StatusOK, "artists_list", &view.Page{
		Title: "Artists",
		Data:  list,
	})
}

// View handles GET /artist/{pk}/
func (h *ArtistHandler) View(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "pk"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	detail, err := h.service.GetArtist(r.Context(), profileID, currentUserID(r))
	if err != nil {
		h.handleServiceError(w, r, err, "view artist")
		return
	}

	h.render(w, r, http.StatusOK, "artist_profile_view", &view.Page{
		Title: detail.Profile.ArtistName,
		Data:  detail,
	})
}

// EditPage handles GET /artist/edit/
func (h *ArtistHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetOwnProfile(r.Context(), currentUserID(r))
	if err != nil {
		h.handleServiceError(w, r, err, "open artist profile")
		return
	}

	h.render(w, r, http.StatusOK, "artist_profile_edit", &view.Page{
		Title: "Edit artist profile",
		Form: &request.ArtistProfileRequest{
			ArtistName:         profile.ArtistName,
			Bio:                profile.Bio,
			Specialty:          string(profile.Specialty),
			ExperienceLevel:    string(profile.ExperienceLevel),
			Website:            profile.Website,
			Instagram:          profile.Instagram,
			Facebook:           profile.Facebook,
			Twitter:            profile.Twitter,
			City:               profile.City,
			Country:            profile.Country,
			AcceptsCommissions: profile.AcceptsCommissions,
		},
		Data: profile,
	})
}

// Edit handles POST /artist/edit/
func (h *ArtistHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := currentUserID(r)

	profile, err := h.service.GetOwnProfile(ctx, userID)
	if err != nil {
		h.handleServiceError(w, r, err, "edit artist profile")
		return
	}

	upload, err := readUpload(r, "profile_image")
	if err != nil {
		h.log.Warn("Rejected profile image upload", zap.Error(err))
		h.renderArtistForm(w, r, "artist_profile_edit", "Edit artist profile", bindArtistProfile(r), profile,
			map[string]string{"profile_image": "The uploaded file could not be read."})
		return
	}

	req := bindArtistProfile(r)
	result, err := h.service.UpdateArtistProfile(ctx, userID, profile.ID, req, upload)

	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		h.renderArtistForm(w, r, "artist_profile_edit", "Edit artist profile", req, profile, verr.Fields)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "edit artist profile")
		return
	}

	h.flash.Add(ctx, flash.LevelSuccess, "Your artist profile has been updated successfully!")
	if result.ImageWarning != "" {
		h.flash.Add(ctx, flash.LevelWarning, result.ImageWarning)
	}
	h.redirect(w, r, "/artist/"+result.Profile.ID.String()+"/")
}

// BecomeArtistPage handles GET /become-artist/
func (h *ArtistHandler) BecomeArtistPage(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.BecomeArtistForm(r.Context(), currentUserID(r))
	if err != nil {
		h.handleServiceError(w, r, err, "open become artist form")
		return
	}

	h.renderArtistForm(w, r, "become_artist", "Become an artist", form, nil, nil)
}

// BecomeArtist handles POST /become-artist/
func (h *ArtistHandler) BecomeArtist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	upload, err := readUpload(r, "profile_image")
	if err != nil {
		h.log.Warn("Rejected profile image upload", zap.Error(err))
		h.renderArtistForm(w, r, "become_artist", "Become an artist", bindArtistProfile(r), nil,
			map[string]string{"profile_image": "The uploaded file could not be read."})
		return
	}

	req := bindArtistProfile(r)
	result, err := h.service.BecomeArtist(ctx, currentUserID(r), req, upload)

	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		h.renderArtistForm(w, r, "become_artist", "Become an artist", req, nil, verr.Fields)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "become artist")
		return
	}

	h.flash.Add(ctx, flash.LevelSuccess, "Congratulations! You are now registered as an artist on ARTO. Start uploading your artworks!")
	if result.ImageWarning != "" {
		h.flash.Add(ctx, flash.LevelWarning, result.ImageWarning)
	}
	h.redirect(w, r, "/dashboard/")
}

// Verify handles POST /admin/artists/{pk}/verify
func (h *ArtistHandler) Verify(w http.ResponseWriter, r *http.Request) {
	h.setVerified(w, r, true)
}

// Unverify handles POST /admin/artists/{pk}/unverify
func (h *ArtistHandler) Unverify(w http.ResponseWriter, r *http.Request) {
	h.setVerified(w, r, false)
}

func (h *ArtistHandler) setVerified(w http.ResponseWriter, r *http.Request, verified bool) {
	profileID, err := uuid.Parse(chi.URLParam(r, "pk"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	profile, err := h.service.SetVerified(r.Context(), profileID, verified)
	if err != nil {
		h.handleServiceError(w, r, err, "set artist verification")
		return
	}

	if verified {
		h.flash.Add(r.Context(), flash.LevelSuccess, profile.ArtistName+" is now verified.")
	} else {
		h.flash.Add(r.Context(), flash.LevelInfo, profile.ArtistName+" is no longer verified.")
	}
	h.redirect(w, r, "/artist/"+profile.ID.String()+"/")
}

func (h *ArtistHandler) renderArtistForm(w http.ResponseWriter, r *http.Request, name, title string, form *request.ArtistProfileRequest, current any, errs map[string]string) {
	h.render(w, r, http.StatusOK, name, &view.Page{
		Title:  title,
		Form:   form,
		Errors: errs,
		Data:   current,
	})
}
