package adaptor

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"arto/internal/dto/request"
	"arto/internal/usecase"
	"arto/pkg/flash"
	"arto/pkg/middleware"
	"arto/pkg/utils"
	"arto/pkg/view"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxUploadBytes   = 10 << 20
	msgForbidden     = "You do not have permission to perform this action."
	msgNotArtist     = "You need to register as an artist first."
	msgAlreadyArtist = "You are already registered as an artist."
	msgServerError   = "Something went wrong on our side. Please try again later."
)

// web carries what every HTML handler needs to answer a request.
type web struct {
	view  *view.Renderer
	flash *flash.Store
	log   *zap.Logger
}

func (h web) render(w http.ResponseWriter, r *http.Request, status int, name string, page *view.Page) {
	page.User = middleware.CurrentUser(r.Context())
	page.CSRFToken = utils.GetCSRFTokenFromContext(r.Context())
	page.CSRFField = middleware.CSRFFieldName
	page.Flashes = h.flash.Pop(r.Context())
	if page.Errors == nil {
		page.Errors = map[string]string{}
	}

	if err := h.view.Render(w, status, name, page); err != nil {
		h.log.Error("Failed to render page", zap.Error(err), zap.String("page", name))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h web) errorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	h.render(w, r, status, "error", &view.Page{Title: title, Data: message})
}

func (h web) notFound(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

func (h web) redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

// handleServiceError maps usecase outcomes that are not validation failures.
func (h web) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	ctx := r.Context()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		h.notFound(w, r)

	case errors.Is(err, usecase.ErrForbidden):
		h.log.Warn(operation+" failed - forbidden", zap.Error(err))
		h.flash.Add(ctx, flash.LevelError, msgForbidden)
		h.redirect(w, r, "/dashboard/")

	case errors.Is(err, usecase.ErrNotArtist):
		h.flash.Add(ctx, flash.LevelError, msgNotArtist)
		h.redirect(w, r, "/become-artist/")

	case errors.Is(err, usecase.ErrAlreadyArtist):
		h.flash.Add(ctx, flash.LevelInfo, msgAlreadyArtist)
		h.redirect(w, r, "/dashboard/")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		h.errorPage(w, r, http.StatusInternalServerError, "Server error", msgServerError)
	}
}

// currentUserID returns the id set by the session middleware. Routes using
// it sit behind RequireLogin.
func currentUserID(r *http.Request) uuid.UUID {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

// formBool reads a checkbox the way browsers submit it.
func formBool(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(name))) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}

func bindArtistProfile(r *http.Request) *request.ArtistProfileRequest {
	return &request.ArtistProfileRequest{
		ArtistName:         strings.TrimSpace(r.FormValue("artist_name")),
		Bio:                r.FormValue("bio"),
		Specialty:          r.FormValue("specialty"),
		ExperienceLevel:    r.FormValue("experience_level"),
		Website:            strings.TrimSpace(r.FormValue("website")),
		Instagram:          strings.TrimSpace(r.FormValue("instagram")),
		Facebook:           strings.TrimSpace(r.FormValue("facebook")),
		Twitter:            strings.TrimSpace(r.FormValue("twitter")),
		City:               strings.TrimSpace(r.FormValue("city")),
		Country:            strings.TrimSpace(r.FormValue("country")),
		AcceptsCommissions: formBool(r, "accepts_commissions"),
		ClearImage:         formBool(r, "profile_image-clear"),
	}
}

// readUpload parses a multipart form and returns the named file, or nil when
// none was sent.
func readUpload(r *http.Request, field string) (*request.ImageUpload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	if header.Size == 0 && header.Filename == "" {
		return nil, nil
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(content) > maxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}

	return &request.ImageUpload{Filename: header.Filename, Content: content}, nil
}

// sessionMeta describes the client for a new session.
func sessionMeta(r *http.Request) request.SessionMeta {
	return request.SessionMeta{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// localRedirect accepts only same-site paths for the login next parameter.
func localRedirect(next string) (string, bool) {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "", false
	}
	return next, true
}
