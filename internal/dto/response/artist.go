package response

import (
	"time"

	"arto/internal/data/entity"
)

type ArtistResponse struct {
	ID                 string                 `json:"id"`
	ArtistName         string                 `json:"artist_name"`
	Bio                string                 `json:"bio"`
	Specialty          entity.Specialty       `json:"specialty"`
	SpecialtyLabel     string                 `json:"specialty_label"`
	ExperienceLevel    entity.ExperienceLevel `json:"experience_level"`
	Website            string                 `json:"website,omitempty"`
	Instagram          string                 `json:"instagram,omitempty"`
	Facebook           string                 `json:"facebook,omitempty"`
	Twitter            string                 `json:"twitter,omitempty"`
	Location           string                 `json:"location,omitempty"`
	ProfileImageURL    string                 `json:"profile_image_url,omitempty"`
	IsVerified         bool                   `json:"is_verified"`
	AcceptsCommissions bool                   `json:"accepts_commissions"`
	CreatedAt          time.Time              `json:"created_at"`
}

// ArtistToResponse converts a profile; mediaURL prefixes the stored image path.
func ArtistToResponse(profile *entity.ArtistProfile, mediaURL string) ArtistResponse {
	resp := ArtistResponse{
		ID:                 profile.ID.String(),
		ArtistName:         profile.ArtistName,
		Bio:                profile.Bio,
		Specialty:          profile.Specialty,
		SpecialtyLabel:     profile.Specialty.Label(),
		ExperienceLevel:    profile.ExperienceLevel,
		Website:            profile.Website,
		Instagram:          profile.Instagram,
		Facebook:           profile.Facebook,
		Twitter:            profile.Twitter,
		Location:           profile.Location(),
		IsVerified:         profile.IsVerified,
		AcceptsCommissions: profile.AcceptsCommissions,
		CreatedAt:          profile.CreatedAt,
	}

	if profile.ProfileImage != nil && *profile.ProfileImage != "" {
		resp.ProfileImageURL = mediaURL + *profile.ProfileImage
	}

	return resp
}

func ArtistsToResponse(profiles []*entity.ArtistProfile, mediaURL string) []ArtistResponse {
	out := make([]ArtistResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ArtistToResponse(p, mediaURL))
	}
	return out
}

// ArtistListResponse is the directory page: profiles plus the filter state.
type ArtistListResponse struct {
	Artists           []*entity.ArtistProfile
	Specialties       []entity.Specialty
	SelectedSpecialty string
}

// ArtistDetailResponse is a single public profile.
type ArtistDetailResponse struct {
	Profile  *entity.ArtistProfile
	User     *entity.User
	IsOwner  bool
	Artworks []any
}
