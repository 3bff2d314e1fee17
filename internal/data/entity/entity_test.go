package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountType(t *testing.T) {
	cases := map[string]struct {
		want AccountType
		ok   bool
	}{
		"":        {AccountTypeBuyer, true},
		"buyer":   {AccountTypeBuyer, true},
		"artist":  {AccountTypeArtist, true},
		" artist": {AccountTypeArtist, true},
		"admin":   {"", false},
		"Artist":  {"", false},
	}
	for in, tc := range cases {
		got, ok := ParseAccountType(in)
		assert.Equal(t, tc.ok, ok, "input %q", in)
		assert.Equal(t, tc.want, got, "input %q", in)
	}
}

func TestParseSpecialty(t *testing.T) {
	for _, s := range Specialties {
		got, ok := ParseSpecialty(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
		assert.NotEqual(t, string(s), s.Label(), "label for %s", s)
	}

	_, ok := ParseSpecialty("sculpture")
	assert.False(t, ok)
	_, ok = ParseSpecialty("")
	assert.False(t, ok)
}

func TestParseExperienceLevel(t *testing.T) {
	for _, e := range ExperienceLevels {
		got, ok := ParseExperienceLevel(string(e))
		assert.True(t, ok)
		assert.Equal(t, e, got)
	}

	_, ok := ParseExperienceLevel("expert")
	assert.False(t, ok)
}

func TestUserNames(t *testing.T) {
	u := &User{Username: "ana", FirstName: "Ana", LastName: "Lee"}
	assert.Equal(t, "Ana Lee", u.FullName())
	assert.Equal(t, "Ana", u.DisplayName())

	anon := &User{Username: "ghost"}
	assert.Equal(t, "", anon.FullName())
	assert.Equal(t, "ghost", anon.DisplayName())
}

func TestArtistLocation(t *testing.T) {
	a := &ArtistProfile{City: "Lisbon", Country: "Portugal"}
	assert.Equal(t, "Lisbon, Portugal", a.Location())

	a.City = ""
	assert.Equal(t, "Portugal", a.Location())
}
