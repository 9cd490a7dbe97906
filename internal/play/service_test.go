package play

import (
	"testing"
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/franchise"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/selection"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playFixture struct {
	mode   *gamemode.ModeConfig
	target *character.Character
	decoy  *character.Character
}

// newPlayFixture seeds a classic mode with a selected target for today and
// one extra character available for wrong guesses.
func newPlayFixture(t *testing.T) *playFixture {
	t.Helper()
	database.OpenTestDB(t,
		&franchise.Franchise{},
		&character.Character{},
		&character.CharacterFranchise{},
		&gamemode.ModeConfig{},
		&selection.DailySelection{},
		&Play{},
		&Attempt{},
	)

	mode := &gamemode.ModeConfig{Name: "Clássico", Kind: gamemode.KindClassic, IsActive: true}
	require.NoError(t, database.DB.Create(mode).Error)

	target := &character.Character{Name: "Moana", Gender: "FEMALE", Hair: "brown"}
	require.NoError(t, database.DB.Create(target).Error)
	decoy := &character.Character{Name: "Elsa", Gender: "FEMALE", Hair: "black"}
	require.NoError(t, database.DB.Create(decoy).Error)

	require.NoError(t, database.DB.Create(&selection.DailySelection{
		Date:         gameday.Today(),
		ModeConfigID: mode.ID,
		CharacterID:  target.ID,
		Latest:       true,
	}).Error)

	return &playFixture{mode: mode, target: target, decoy: decoy}
}

func userOwner(id uint) Owner    { return Owner{UserID: &id} }
func guestOwner(id string) Owner { return Owner{GuestID: &id} }

func TestStartPlayIsIdempotentPerOwnerModeDay(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	first, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)
	second, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, first.PlayID, second.PlayID)

	var total int64
	require.NoError(t, database.DB.Model(&Play{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestStartPlayIssuesGuestIDAndResumes(t *testing.T) {
	fx := newPlayFixture(t)

	first, err := StartPlay(Owner{}, fx.mode.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, first.GuestID)
	assert.NotEmpty(t, *first.GuestID)

	resumed, err := StartPlay(guestOwner(*first.GuestID), fx.mode.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.PlayID, resumed.PlayID)
}

func TestStartPlayFailsWithoutSelection(t *testing.T) {
	fx := newPlayFixture(t)

	// No selection exists for yesterday.
	yesterday := gameday.Today().AddDate(0, 0, -1)
	_, err := StartPlay(userOwner(1), fx.mode.ID, &yesterday)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestStartPlayHidesTargetName(t *testing.T) {
	fx := newPlayFixture(t)

	result, err := StartPlay(userOwner(1), fx.mode.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "FEMALE", result.Character.Gender)
	assert.Equal(t, "brown", result.Character.Hair)
}

func TestCorrectGuessCompletesPlay(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	result, err := MakeGuess(owner, started.PlayID, "Moana")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.True(t, result.PlayCompleted)
	assert.Equal(t, 1, result.AttemptNumber)

	progress, err := Progress(owner, started.PlayID)
	require.NoError(t, err)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, 1, progress.AttemptsCount)
}

func TestWrongGuessComparisonPairs(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	result, err := MakeGuess(owner, started.PlayID, "Elsa")
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.False(t, result.PlayCompleted)

	gender := result.Comparison["gender"]
	assert.Equal(t, "FEMALE", gender.Guessed)
	assert.Equal(t, "FEMALE", gender.Target)

	hair := result.Comparison["hair"]
	assert.Equal(t, "black", hair.Guessed)
	assert.Equal(t, "brown", hair.Target)
}

func TestDuplicateGuessRejected(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	_, err = MakeGuess(owner, started.PlayID, "Elsa")
	require.NoError(t, err)

	_, err = MakeGuess(owner, started.PlayID, " Elsa ")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))

	progress, err := Progress(owner, started.PlayID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.AttemptsCount, "rejected duplicate must not count")
}

func TestGuessAfterCompletionRejected(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)
	_, err = MakeGuess(owner, started.PlayID, "Moana")
	require.NoError(t, err)

	_, err = MakeGuess(owner, started.PlayID, "Elsa")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestUnknownGuessRejected(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	_, err = MakeGuess(owner, started.PlayID, "Shrek")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestBlankGuessRejected(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	_, err = MakeGuess(owner, started.PlayID, "   ")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestForeignPlayForbidden(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)
	intruder := userOwner(2)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	_, err = MakeGuess(intruder, started.PlayID, "Elsa")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = ListAttempts(guestOwner("some-guest"), started.PlayID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestListAttemptsReconstructsHistory(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)
	_, err = MakeGuess(owner, started.PlayID, "Elsa")
	require.NoError(t, err)
	_, err = MakeGuess(owner, started.PlayID, "Moana")
	require.NoError(t, err)

	attempts, err := ListAttempts(owner, started.PlayID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, 1, attempts[0].AttemptNumber)
	assert.Equal(t, "Elsa", attempts[0].Guess)
	assert.False(t, attempts[0].IsCorrect)
	assert.Contains(t, attempts[0].Comparison, "gender")

	assert.Equal(t, 2, attempts[1].AttemptNumber)
	assert.Equal(t, "Moana", attempts[1].Guess)
	assert.True(t, attempts[1].IsCorrect)
}

func TestProgressByMode(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	progress, err := ProgressByMode(owner, fx.mode.ID)
	require.NoError(t, err)
	assert.Nil(t, progress, "no play started yet")

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	progress, err = ProgressByMode(owner, fx.mode.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, started.PlayID, progress.PlayID)
}

func TestGuessRecordsTimestamp(t *testing.T) {
	fx := newPlayFixture(t)
	owner := userOwner(1)

	started, err := StartPlay(owner, fx.mode.ID, nil)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	result, err := MakeGuess(owner, started.PlayID, "Moana")
	require.NoError(t, err)
	assert.True(t, result.TriedAt.After(before))
}
