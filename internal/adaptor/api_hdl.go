package adaptor

import (
	"errors"
	"net/http"

	"arto/internal/dto/response"
	"arto/internal/usecase"
	"arto/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIHandler serves the read-only JSON view of the artist directory.
type APIHandler struct {
	service  usecase.ArtistService
	mediaURL string
	log      *zap.Logger
}

func NewAPIHandler(service usecase.ArtistService, mediaURL string, log *zap.Logger) *APIHandler {
	return &APIHandler{
		service:  service,
		mediaURL: mediaURL,
		log:      log.With(zap.String("component", "api")),
	}
}

// ListArtists handles GET /api/artists?specialty=
func (h *APIHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListArtists(r.Context(), r.URL.Query().Get("specialty"))
	if err != nil {
		h.handleServiceError(w, err, "list artists")
		return
	}

	utils.ResponseSuccess(w, "Artists retrieved successfully", response.ArtistsToResponse(list.Artists, h.mediaURL))
}

// GetArtist handles GET /api/artists/{pk}
func (h *APIHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "pk"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid artist ID", nil)
		return
	}

	detail, err := h.service.GetArtist(r.Context(), profileID, uuid.Nil)
	if err != nil {
		h.handleServiceError(w, err, "get artist")
		return
	}

	utils.ResponseSuccess(w, "Artist retrieved successfully", response.ArtistToResponse(detail.Profile, h.mediaURL))
}

func (h *APIHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var verr *utils.ValidationError

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Artist not found")

	case errors.As(err, &verr):
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
