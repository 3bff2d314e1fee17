package entity

import (
	"strings"

	"github.com/google/uuid"
)

type Specialty string

const (
	SpecialtyPainter       Specialty = "painter"
	SpecialtySculptor      Specialty = "sculptor"
	SpecialtyDigitalArtist Specialty = "digital_artist"
	SpecialtyPhotographer  Specialty = "photographer"
	SpecialtyMixedMedia    Specialty = "mixed_media"
	SpecialtyIllustrator   Specialty = "illustrator"
	SpecialtyOther         Specialty = "other"
)

// Specialties lists every specialty in display order.
var Specialties = []Specialty{
	SpecialtyPainter,
	SpecialtySculptor,
	SpecialtyDigitalArtist,
	SpecialtyPhotographer,
	SpecialtyMixedMedia,
	SpecialtyIllustrator,
	SpecialtyOther,
}

func ParseSpecialty(value string) (Specialty, bool) {
	s := Specialty(strings.TrimSpace(value))
	if s.Valid() {
		return s, true
	}
	return "", false
}

func (s Specialty) Valid() bool {
	switch s {
	case SpecialtyPainter, SpecialtySculptor, SpecialtyDigitalArtist, SpecialtyPhotographer,
		SpecialtyMixedMedia, SpecialtyIllustrator, SpecialtyOther:
		return true
	default:
		return false
	}
}

func (s Specialty) Label() string {
	switch s {
	case SpecialtyPainter:
		return "Painter"
	case SpecialtySculptor:
		return "Sculptor"
	case SpecialtyDigitalArtist:
		return "Digital Artist"
	case SpecialtyPhotographer:
		return "Photographer"
	case SpecialtyMixedMedia:
		return "Mixed Media Artist"
	case SpecialtyIllustrator:
		return "Illustrator"
	case SpecialtyOther:
		return "Other"
	default:
		return string(s)
	}
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExperienced  ExperienceLevel = "experienced"
	ExperienceProfessional ExperienceLevel = "professional"
)

var ExperienceLevels = []ExperienceLevel{
	ExperienceBeginner,
	ExperienceIntermediate,
	ExperienceExperienced,
	ExperienceProfessional,
}

func ParseExperienceLevel(value string) (ExperienceLevel, bool) {
	e := ExperienceLevel(strings.TrimSpace(value))
	if e.Valid() {
		return e, true
	}
	return "", false
}

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExperienced, ExperienceProfessional:
		return true
	default:
		return false
	}
}

func (e ExperienceLevel) Label() string {
	switch e {
	case ExperienceBeginner:
		return "Beginner (0-2 years)"
	case ExperienceIntermediate:
		return "Intermediate (3-5 years)"
	case ExperienceExperienced:
		return "Experienced (6-10 years)"
	case ExperienceProfessional:
		return "Professional (10+ years)"
	default:
		return string(e)
	}
}

// ArtistProfile is the public face of an artist account.
// An account owns one iff its UserProfile.IsArtist is true.
type ArtistProfile struct {
	BaseNoDelete
	UserID             uuid.UUID       `db:"user_id"`
	ArtistName         string          `db:"artist_name"`
	Bio                string          `db:"bio"`
	Specialty          Specialty       `db:"specialty"`
	ExperienceLevel    ExperienceLevel `db:"experience_level"`
	Website            string          `db:"website"`
	Instagram          string          `db:"instagram"`
	Facebook           string          `db:"facebook"`
	Twitter            string          `db:"twitter"`
	City               string          `db:"city"`
	Country            string          `db:"country"`
	ProfileImage       *string         `db:"profile_image"`
	IsVerified         bool            `db:"is_verified"`
	AcceptsCommissions bool            `db:"accepts_commissions"`
}

// Location renders "city, country" skipping empty parts.
func (a *ArtistProfile) Location() string {
	parts := make([]string, 0, 2)
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}
