package play

import (
	"testing"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestComparisonFieldsPerMode(t *testing.T) {
	img := "https://cdn.example.com/upload/v1/chars/elsa-2.png"
	guessed := &character.Character{
		Name:        "Elsa",
		Gender:      "FEMALE",
		Hair:        "black",
		Description: "an ice queen",
		Emojis:      datatypes.JSONSlice[string]{"❄️", "👑"},
		ImageURL2:   &img,
	}
	target := &character.Character{
		Name:        "Moana",
		Gender:      "FEMALE",
		Hair:        "brown",
		Description: "a wayfinder",
		Emojis:      datatypes.JSONSlice[string]{"🌊", "⛵"},
	}

	classic := BuildComparison(gamemode.KindClassic, guessed, target)
	for _, field := range []string{"gender", "race", "ethnicity", "hair", "status", "franchises"} {
		assert.Contains(t, classic, field)
	}
	assert.NotContains(t, classic, "description")

	emoji := BuildComparison(gamemode.KindEmoji, guessed, target)
	assert.Len(t, emoji, 1)
	assert.Equal(t, []string{"❄️", "👑"}, emoji["emojis"].Guessed)

	description := BuildComparison(gamemode.KindDescription, guessed, target)
	assert.Len(t, description, 1)
	assert.Equal(t, "a wayfinder", description["description"].Target)

	image := BuildComparison(gamemode.KindImage, guessed, target)
	assert.Len(t, image, 1)
	assert.Equal(t, img, image["image"].Guessed)
	assert.Equal(t, "", image["image"].Target, "missing secondary image collapses to empty")
}

func TestUnknownKindFallsBackToClassic(t *testing.T) {
	comparison := BuildComparison(gamemode.Kind("mystery"), &character.Character{}, &character.Character{})
	assert.Contains(t, comparison, "gender")
	assert.Contains(t, comparison, "franchises")
}
