package imagestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1700000000/characters/moana.png": "characters/moana",
		"https://res.cloudinary.com/demo/image/upload/v1/a/b/c.jpg":                     "a/b/c",
		"https://res.cloudinary.com/demo/image/upload/v1/noext":                         "noext",
		"https://example.com/no/upload/marker.png":                                      "",
		"not a url": "",
	}
	for url, want := range cases {
		assert.Equal(t, want, PublicIDFromURL(url), "url: %s", url)
	}
}
