package selection

import (
	"testing"
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/franchise"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSelectionDB(t *testing.T) {
	t.Helper()
	database.OpenTestDB(t,
		&franchise.Franchise{},
		&character.Character{},
		&character.CharacterFranchise{},
		&gamemode.ModeConfig{},
		&DailySelection{},
	)
}

func seedMode(t *testing.T, name string, kind gamemode.Kind, secondImage bool) *gamemode.ModeConfig {
	t.Helper()
	mode := &gamemode.ModeConfig{
		Name:            name,
		Kind:            kind,
		IsActive:        true,
		UsesSecondImage: secondImage,
	}
	require.NoError(t, database.DB.Create(mode).Error)
	return mode
}

func seedCharacter(t *testing.T, name string, secondImage string) *character.Character {
	t.Helper()
	ch := &character.Character{Name: name}
	if secondImage != "" {
		ch.ImageURL2 = &secondImage
	}
	require.NoError(t, database.DB.Create(ch).Error)
	return ch
}

func latestRows(t *testing.T, day time.Time) []DailySelection {
	t.Helper()
	var rows []DailySelection
	require.NoError(t, database.DB.
		Where("date = ? AND latest = ?", gameday.Start(day), true).
		Find(&rows).Error)
	return rows
}

func TestRunDailyDrawCoversActiveModesWithoutCollisions(t *testing.T) {
	openSelectionDB(t)

	seedMode(t, "Clássico", gamemode.KindClassic, false)
	seedMode(t, "Emojis", gamemode.KindEmoji, false)
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		seedCharacter(t, name, "")
	}

	day := gameday.Today()
	require.NoError(t, RunDailyDraw(day))

	rows := latestRows(t, day)
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].CharacterID, rows[1].CharacterID,
		"two modes must not share a target on the same day")
	assert.NotEqual(t, rows[0].ModeConfigID, rows[1].ModeConfigID)
}

func TestRunDailyDrawIsIdempotent(t *testing.T) {
	openSelectionDB(t)

	seedMode(t, "Clássico", gamemode.KindClassic, false)
	seedCharacter(t, "Alpha", "")
	seedCharacter(t, "Beta", "")

	day := gameday.Today()
	require.NoError(t, RunDailyDraw(day))
	first := latestRows(t, day)
	require.Len(t, first, 1)

	require.NoError(t, RunDailyDraw(day))
	second := latestRows(t, day)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "a re-run must not create new rows")

	var total int64
	require.NoError(t, database.DB.Model(&DailySelection{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestDrawRespectsNoRepeatWindow(t *testing.T) {
	openSelectionDB(t)

	mode := seedMode(t, "Clássico", gamemode.KindClassic, false)
	alpha := seedCharacter(t, "Alpha", "")
	beta := seedCharacter(t, "Beta", "")

	day := gameday.Today()
	yesterday := day.AddDate(0, 0, -1)
	require.NoError(t, database.DB.Create(&DailySelection{
		Date: yesterday, ModeConfigID: mode.ID, CharacterID: alpha.ID, Latest: true,
	}).Error)

	require.NoError(t, RunDailyDraw(day))

	rows := latestRows(t, day)
	require.Len(t, rows, 1)
	assert.Equal(t, beta.ID, rows[0].CharacterID,
		"yesterday's pick must be excluded by the no-repeat window")
}

func TestDrawSkipsModeWithNoCandidates(t *testing.T) {
	openSelectionDB(t)

	seedMode(t, "Imagem", gamemode.KindImage, true)
	classic := seedMode(t, "Clássico", gamemode.KindClassic, false)
	seedCharacter(t, "Alpha", "") // no second image, ineligible for Imagem

	day := gameday.Today()
	require.NoError(t, RunDailyDraw(day), "an empty mode must not abort the whole draw")

	rows := latestRows(t, day)
	require.Len(t, rows, 1)
	assert.Equal(t, classic.ID, rows[0].ModeConfigID)
}

func TestSecondImageFilter(t *testing.T) {
	openSelectionDB(t)

	seedMode(t, "Imagem", gamemode.KindImage, true)
	seedCharacter(t, "Plain", "")
	withImage := seedCharacter(t, "Pictured", "https://cdn.example.com/upload/v1/chars/pictured-2.png")

	day := gameday.Today()
	require.NoError(t, RunDailyDraw(day))

	rows := latestRows(t, day)
	require.Len(t, rows, 1)
	assert.Equal(t, withImage.ID, rows[0].CharacterID)
}

func TestManualDrawReplacesLatestKeepingHistory(t *testing.T) {
	openSelectionDB(t)

	mode := seedMode(t, "Clássico", gamemode.KindClassic, false)
	seedCharacter(t, "Alpha", "")

	day := gameday.Today()
	require.NoError(t, RunDailyDraw(day))

	// Only one character exists, so the redraw must be able to re-pick the
	// mode's own current target.
	sel, err := ManualDraw(mode.ID)
	require.NoError(t, err)
	assert.True(t, sel.Latest)

	var total int64
	require.NoError(t, database.DB.Model(&DailySelection{}).
		Where("date = ?", day).Count(&total).Error)
	assert.Equal(t, int64(2), total, "redraw appends history, never deletes")

	rows := latestRows(t, day)
	require.Len(t, rows, 1)
	assert.Equal(t, sel.ID, rows[0].ID)
}

func TestManualSelectRejectsCrossModeCollision(t *testing.T) {
	openSelectionDB(t)

	classic := seedMode(t, "Clássico", gamemode.KindClassic, false)
	emoji := seedMode(t, "Emojis", gamemode.KindEmoji, false)
	alpha := seedCharacter(t, "Alpha", "")
	seedCharacter(t, "Beta", "")

	_, err := ManualSelect(classic.ID, alpha.ID)
	require.NoError(t, err)

	_, err = ManualSelect(emoji.ID, alpha.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestRepairLatestRestoresAppendOrder(t *testing.T) {
	openSelectionDB(t)

	mode := seedMode(t, "Clássico", gamemode.KindClassic, false)
	alpha := seedCharacter(t, "Alpha", "")
	beta := seedCharacter(t, "Beta", "")

	day := gameday.Today()
	older := DailySelection{Date: day, ModeConfigID: mode.ID, CharacterID: alpha.ID, Latest: true}
	require.NoError(t, database.DB.Create(&older).Error)
	newer := DailySelection{Date: day, ModeConfigID: mode.ID, CharacterID: beta.ID, Latest: true}
	require.NoError(t, database.DB.Create(&newer).Error)

	require.NoError(t, RepairLatest(day, &mode.ID))

	rows := latestRows(t, day)
	require.Len(t, rows, 1)
	assert.Equal(t, newer.ID, rows[0].ID)

	// Running repair again changes nothing.
	require.NoError(t, RepairLatest(day, &mode.ID))
	rows = latestRows(t, day)
	require.Len(t, rows, 1)
	assert.Equal(t, newer.ID, rows[0].ID)
}
