package request

import (
	"strings"

	"arto/internal/data/entity"
	"arto/pkg/utils"
)

func init() {
	utils.RegisterValidation("specialty", func(value string) bool {
		_, ok := entity.ParseSpecialty(value)
		return ok
	})
	utils.RegisterValidation("experience_level", func(value string) bool {
		_, ok := entity.ParseExperienceLevel(value)
		return ok
	})
}

// ArtistProfileRequest is the editable subset of an artist profile. It backs
// both the become-artist form and the edit form.
type ArtistProfileRequest struct {
	ArtistName         string `form:"artist_name" validate:"required,max=100"`
	Bio                string `form:"bio" validate:"max=500"`
	Specialty          string `form:"specialty" validate:"required,specialty"`
	ExperienceLevel    string `form:"experience_level" validate:"required,experience_level"`
	Website            string `form:"website" validate:"omitempty,http_url,max=200"`
	Instagram          string `form:"instagram" validate:"max=100"`
	Facebook           string `form:"facebook" validate:"omitempty,http_url,max=200"`
	Twitter            string `form:"twitter" validate:"max=100"`
	City               string `form:"city" validate:"max=100"`
	Country            string `form:"country" validate:"max=100"`
	AcceptsCommissions bool   `form:"accepts_commissions"`
	ClearImage         bool   `form:"profile_image-clear"`
}

// Normalize trims the single-line fields in place. Bio keeps its spacing.
func (r *ArtistProfileRequest) Normalize() {
	for _, field := range []*string{
		&r.ArtistName, &r.Specialty, &r.ExperienceLevel, &r.Website,
		&r.Instagram, &r.Facebook, &r.Twitter, &r.City, &r.Country,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// ImageUpload is a file received with a form, held in memory.
type ImageUpload struct {
	Filename string
	Content  []byte
}
