package response

import "arto/internal/data/entity"

// FeaturedArtist is a home page card. Profile is nil for sample entries.
type FeaturedArtist struct {
	Name      string
	Specialty string
	Profile   *entity.ArtistProfile
}

type Category struct {
	Name  string
	Count int
}

type HomeResponse struct {
	FeaturedArtists    []FeaturedArtist
	FeaturedCategories []Category
}
