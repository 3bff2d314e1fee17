package adaptor

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalRedirect(t *testing.T) {
	tests := []struct {
		next string
		ok   bool
	}{
		{"/dashboard/", true},
		{"/artist/edit/?tab=links", true},
		{"", false},
		{"dashboard/", false},
		{"//evil.example/", false},
		{"/\\evil.example", false},
		{"https://evil.example/", false},
	}

	for _, tt := range tests {
		got, ok := localRedirect(tt.next)
		assert.Equal(t, tt.ok, ok, tt.next)
		if ok {
			assert.Equal(t, tt.next, got)
		}
	}
}

func TestBindArtistProfile(t *testing.T) {
	form := url.Values{
		"artist_name":         {"  Ana Lee "},
		"bio":                 {" keeps spacing "},
		"specialty":           {"painter"},
		"experience_level":    {"beginner"},
		"website":             {" https://ana.example "},
		"accepts_commissions": {"on"},
		"profile_image-clear": {"false"},
	}
	r := httptest.NewRequest("POST", "/artist/edit/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req := bindArtistProfile(r)
	assert.Equal(t, "Ana Lee", req.ArtistName)
	assert.Equal(t, " keeps spacing ", req.Bio)
	assert.Equal(t, "https://ana.example", req.Website)
	assert.True(t, req.AcceptsCommissions)
	assert.False(t, req.ClearImage)
}

func TestReadUploadWithoutMultipart(t *testing.T) {
	r := httptest.NewRequest("POST", "/become-artist/", strings.NewReader("artist_name=Ana"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	upload, err := readUpload(r, "profile_image")
	assert.NoError(t, err)
	assert.Nil(t, upload)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:5123"
	assert.Equal(t, "203.0.113.7", clientIP(r))

	r.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(r))
}
