package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"arto/internal/dto/request"
	"arto/internal/usecase"
	"arto/pkg/flash"
	"arto/pkg/utils"
	"arto/pkg/view"
)

type AccountHandler struct {
	web
	service usecase.ProfileService
}

func NewAccountHandler(service usecase.ProfileService, base web) *AccountHandler {
	return &AccountHandler{
		web:     base,
		service: service,
	}
}

// ProfilePage handles GET /account/profile/
func (h *AccountHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetUserProfile(r.Context(), currentUserID(r))
	if err != nil {
		h.handleServiceError(w, r, err, "open user profile")
		return
	}

	form := &request.UserProfileRequest{
		Phone:                  profile.Phone,
		Address:                profile.Address,
		NewsletterSubscription: profile.NewsletterSubscription,
	}
	if profile.BirthDate != nil {
		form.BirthDate = profile.BirthDate.Format("2006-01-02")
	}

	h.render(w, r, http.StatusOK, "user_profile_edit", &view.Page{
		Title: "Account details",
		Form:  form,
	})
}

// UpdateProfile handles POST /account/profile/
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	req := &request.UserProfileRequest{
		Phone:                  strings.TrimSpace(r.FormValue("phone")),
		Address:                strings.TrimSpace(r.FormValue("address")),
		BirthDate:              strings.TrimSpace(r.FormValue("birth_date")),
		NewsletterSubscription: formBool(r, "newsletter_subscription"),
	}

	_, err := h.service.UpdateUserProfile(r.Context(), currentUserID(r), req)

	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		h.render(w, r, http.StatusOK, "user_profile_edit", &view.Page{
			Title:  "Account details",
			Form:   req,
			Errors: verr.Fields,
		})
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "update user profile")
		return
	}

	h.flash.Add(r.Context(), flash.LevelSuccess, "Your profile has been updated.")
	h.redirect(w, r, "/dashboard/")
}
