package response

import "arto/internal/data/entity"

type DashboardStats struct {
	Favorites int
	Orders    int
	Following int
	CartItems int
	Artworks  int
}

type Activity struct {
	Action string
	Item   string
	Time   string
}

type DashboardResponse struct {
	User             *entity.User
	UserProfile      *entity.UserProfile
	ArtistProfile    *entity.ArtistProfile
	IsArtist         bool
	Stats            DashboardStats
	RecentActivities []Activity
}
