package play

import (
	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/gamemode"
)

// Pair is one revealed field as a {guessed, target} value pair. The client
// decides exact/partial/no-match styling itself.
type Pair struct {
	Guessed any `json:"guessed"`
	Target  any `json:"target"`
}

// Comparison maps revealed field names to their pairs. Which fields appear
// depends on the mode kind.
type Comparison map[string]Pair

// comparisonBuilders is the capability table mapping a mode kind to its
// comparison function. It is fixed at compile time; gameplay code never
// branches on a mode's display name.
var comparisonBuilders = map[gamemode.Kind]func(guessed, target *character.Character) Comparison{
	gamemode.KindClassic:     classicComparison,
	gamemode.KindEmoji:       emojiComparison,
	gamemode.KindDescription: descriptionComparison,
	gamemode.KindImage:       imageComparison,
}

// BuildComparison returns the mode-dependent comparison payload for a guess.
// Unknown kinds fall back to the classic field set.
func BuildComparison(kind gamemode.Kind, guessed, target *character.Character) Comparison {
	builder, ok := comparisonBuilders[kind]
	if !ok {
		builder = classicComparison
	}
	return builder(guessed, target)
}

func classicComparison(guessed, target *character.Character) Comparison {
	return Comparison{
		"gender":     {Guessed: guessed.Gender, Target: target.Gender},
		"race":       {Guessed: []string(guessed.Race), Target: []string(target.Race)},
		"ethnicity":  {Guessed: []string(guessed.Ethnicity), Target: []string(target.Ethnicity)},
		"hair":       {Guessed: guessed.Hair, Target: target.Hair},
		"status":     {Guessed: guessed.AliveStatus, Target: target.AliveStatus},
		"franchises": {Guessed: guessed.FranchiseNames(), Target: target.FranchiseNames()},
	}
}

func emojiComparison(guessed, target *character.Character) Comparison {
	return Comparison{
		"emojis": {Guessed: []string(guessed.Emojis), Target: []string(target.Emojis)},
	}
}

func descriptionComparison(guessed, target *character.Character) Comparison {
	return Comparison{
		"description": {Guessed: guessed.Description, Target: target.Description},
	}
}

func imageComparison(guessed, target *character.Character) Comparison {
	return Comparison{
		"image": {Guessed: urlOrEmpty(guessed.ImageURL2), Target: urlOrEmpty(target.ImageURL2)},
	}
}

func urlOrEmpty(url *string) string {
	if url == nil {
		return ""
	}
	return *url
}
