package selection

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NoRepeatDays is the trailing window within which a character cannot be
// drawn again for the same mode.
var NoRepeatDays = 30

// randIntn draws a uniform offset in [0, n). Tests swap it for a
// deterministic source.
var randIntn = rand.Intn

// RunDailyDraw ensures every active mode has a latest selection for the
// given day. Modes that already have one are left alone; modes with no
// eligible candidate are skipped with a warning so the remaining modes still
// get their draw.
func RunDailyDraw(day time.Time) error {
	day = gameday.Start(day)

	modes, err := gamemode.ActiveModes()
	if err != nil {
		return err
	}

	usedToday, err := charactersUsedOn(day)
	if err != nil {
		return err
	}

	for _, mode := range modes {
		if _, taken := latestFor(day, mode.ID); taken {
			continue
		}
		sel, err := drawForMode(day, mode, usedToday)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				log.Warn().
					Str("mode", mode.Name).
					Str("date", gameday.FormatDay(day)).
					Msg("daily draw: no eligible candidates, mode skipped")
				continue
			}
			return err
		}
		usedToday[sel.CharacterID] = true
		log.Info().
			Str("mode", mode.Name).
			Uint("characterId", sel.CharacterID).
			Str("date", gameday.FormatDay(day)).
			Msg("daily draw: selection created")
	}
	return nil
}

// ManualDraw redraws a single mode for today on admin demand. Unlike the
// daily job, an empty candidate set is reported to the caller.
func ManualDraw(modeConfigID uint) (*DailySelection, error) {
	mode, err := gamemode.FindByID(modeConfigID)
	if err != nil {
		return nil, err
	}
	day := gameday.Today()

	usedToday, err := charactersUsedOn(day)
	if err != nil {
		return nil, err
	}
	// A redraw replaces this mode's own pick, so it must not block itself.
	if id, ok := latestFor(day, mode.ID); ok {
		delete(usedToday, id)
	}

	sel, err := drawForMode(day, *mode, usedToday)
	if err != nil {
		return nil, err
	}
	return FindByID(sel.ID)
}

// ManualSelect forces a specific character as today's target for a mode.
// The pick must satisfy the mode's eligibility filter and must not already
// be another mode's target today.
func ManualSelect(modeConfigID, characterID uint) (*DailySelection, error) {
	mode, err := gamemode.FindByID(modeConfigID)
	if err != nil {
		return nil, err
	}
	ch, err := character.FindByID(characterID)
	if err != nil {
		return nil, err
	}
	if mode.UsesSecondImage && (ch.ImageURL2 == nil || *ch.ImageURL2 == "") {
		return nil, apperr.BadRequest("character %q has no second image required by mode %q", ch.Name, mode.Name)
	}

	day := gameday.Today()
	usedToday, err := charactersUsedOn(day)
	if err != nil {
		return nil, err
	}
	if id, ok := latestFor(day, mode.ID); ok {
		delete(usedToday, id)
	}
	if usedToday[characterID] {
		return nil, apperr.BadRequest("character %q is already today's target for another mode", ch.Name)
	}

	sel, err := insertLatest(day, mode.ID, characterID)
	if err != nil {
		return nil, err
	}
	return FindByID(sel.ID)
}

// RepairLatest re-derives the latest flags for a day from append order:
// for each mode with rows on that day, exactly the newest row ends up
// latest. Idempotent.
func RepairLatest(day time.Time, modeConfigID *uint) error {
	day = gameday.Start(day)

	query := database.DB.Model(&DailySelection{}).Where("date = ?", day)
	if modeConfigID != nil {
		query = query.Where("mode_config_id = ?", *modeConfigID)
	}
	var rows []DailySelection
	if err := query.Order("mode_config_id asc, created_at asc, id asc").Find(&rows).Error; err != nil {
		return err
	}

	newestPerMode := make(map[uint]uint)
	for _, row := range rows {
		newestPerMode[row.ModeConfigID] = row.ID
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			shouldBeLatest := newestPerMode[row.ModeConfigID] == row.ID
			if row.Latest == shouldBeLatest {
				continue
			}
			if err := tx.Model(&DailySelection{}).Where("id = ?", row.ID).
				Update("latest", shouldBeLatest).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --- Read queries ---

// FindByID fetches one selection with relations preloaded.
func FindByID(id uint) (*DailySelection, error) {
	var sel DailySelection
	err := database.DB.
		Preload("Character.Franchises.Franchise").
		Preload("ModeConfig").
		First(&sel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("daily selection %d not found", id)
		}
		return nil, err
	}
	return &sel, nil
}

// TodayLatest lists today's latest selections, optionally for one mode.
func TodayLatest(modeConfigID *uint) ([]DailySelection, error) {
	day := gameday.Today()
	query := database.DB.
		Preload("Character.Franchises.Franchise").
		Preload("ModeConfig").
		Where("date = ? AND latest = ?", day, true)
	if modeConfigID != nil {
		query = query.Where("mode_config_id = ?", *modeConfigID)
	}
	var sels []DailySelection
	if err := query.Order("mode_config_id asc").Find(&sels).Error; err != nil {
		return nil, err
	}
	return sels, nil
}

// AllTodayRaw lists every historical row for today, redraw history included.
func AllTodayRaw() ([]DailySelection, error) {
	day := gameday.Today()
	var sels []DailySelection
	err := database.DB.
		Preload("Character").
		Preload("ModeConfig").
		Where("date = ?", day).
		Order("mode_config_id asc, created_at asc").
		Find(&sels).Error
	if err != nil {
		return nil, err
	}
	return sels, nil
}

// LatestByMode returns today's latest selection for one mode.
func LatestByMode(modeConfigID uint) (*DailySelection, error) {
	return LatestByDayAndMode(modeConfigID, gameday.Today())
}

// LatestByDayAndMode returns the latest selection for (mode, day).
func LatestByDayAndMode(modeConfigID uint, day time.Time) (*DailySelection, error) {
	day = gameday.Start(day)
	var sel DailySelection
	err := database.DB.
		Preload("Character.Franchises.Franchise").
		Preload("ModeConfig").
		Where("mode_config_id = ? AND date = ? AND latest = ?", modeConfigID, day, true).
		First(&sel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no selection for mode %d on %s", modeConfigID, gameday.FormatDay(day))
		}
		return nil, err
	}
	return &sel, nil
}

// CalendarDay is one day that has an active selection.
type CalendarDay struct {
	Date         string `json:"date"`
	ModeConfigID uint   `json:"modeConfigId"`
	CharacterID  uint   `json:"characterId"`
}

// Calendar lists the days in [from, to] that have latest selections.
func Calendar(modeConfigID *uint, from, to time.Time) ([]CalendarDay, error) {
	query := database.DB.Model(&DailySelection{}).
		Where("latest = ? AND date >= ? AND date <= ?", true, gameday.Start(from), gameday.Start(to))
	if modeConfigID != nil {
		query = query.Where("mode_config_id = ?", *modeConfigID)
	}
	var sels []DailySelection
	if err := query.Order("date asc, mode_config_id asc").Find(&sels).Error; err != nil {
		return nil, err
	}
	days := make([]CalendarDay, 0, len(sels))
	for _, s := range sels {
		days = append(days, CalendarDay{
			Date:         gameday.FormatDay(s.Date),
			ModeConfigID: s.ModeConfigID,
			CharacterID:  s.CharacterID,
		})
	}
	return days, nil
}

// --- Draw internals ---

// charactersUsedOn collects the character ids already active on a day across
// all modes, so two modes never share a target.
func charactersUsedOn(day time.Time) (map[uint]bool, error) {
	var rows []DailySelection
	err := database.DB.
		Select("character_id, mode_config_id").
		Where("date = ? AND latest = ?", day, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	used := make(map[uint]bool, len(rows))
	for _, row := range rows {
		used[row.CharacterID] = true
	}
	return used, nil
}

// latestFor reports the active character for (day, mode), if any.
func latestFor(day time.Time, modeConfigID uint) (uint, bool) {
	var sel DailySelection
	err := database.DB.
		Select("character_id").
		Where("date = ? AND mode_config_id = ? AND latest = ?", day, modeConfigID, true).
		First(&sel).Error
	if err != nil {
		return 0, false
	}
	return sel.CharacterID, true
}

// eligibleQuery builds the candidate set for a mode on a day: not used today
// by another mode, not drawn for this mode within the no-repeat window, and
// passing the mode's own filter.
func eligibleQuery(day time.Time, mode gamemode.ModeConfig, usedToday map[uint]bool) *gorm.DB {
	windowStart := day.AddDate(0, 0, -NoRepeatDays)

	query := database.DB.Model(&character.Character{}).
		Where("id NOT IN (?)",
			database.DB.Model(&DailySelection{}).
				Select("character_id").
				Where("mode_config_id = ? AND latest = ? AND date >= ? AND date < ?",
					mode.ID, true, windowStart, day),
		)

	if len(usedToday) > 0 {
		ids := make([]uint, 0, len(usedToday))
		for id := range usedToday {
			ids = append(ids, id)
		}
		query = query.Where("id NOT IN ?", ids)
	}

	if mode.UsesSecondImage {
		query = query.Where("image_url2 IS NOT NULL AND image_url2 <> ''")
	}
	return query
}

// drawForMode picks one eligible character uniformly at random via
// count + random offset + single-row fetch, then installs it as the latest
// selection. The candidate set is never materialized in memory.
func drawForMode(day time.Time, mode gamemode.ModeConfig, usedToday map[uint]bool) (*DailySelection, error) {
	var total int64
	if err := eligibleQuery(day, mode, usedToday).Count(&total).Error; err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, apperr.NotFound("no eligible character for mode %q on %s", mode.Name, gameday.FormatDay(day))
	}

	offset := randIntn(int(total))
	var picked character.Character
	err := eligibleQuery(day, mode, usedToday).
		Order("id asc").
		Offset(offset).
		Limit(1).
		First(&picked).Error
	if err != nil {
		return nil, err
	}

	return insertLatest(day, mode.ID, picked.ID)
}

// insertLatest clears any previous latest rows for (day, mode) and appends
// the new active selection, atomically.
func insertLatest(day time.Time, modeConfigID, characterID uint) (*DailySelection, error) {
	sel := DailySelection{
		Date:         day,
		ModeConfigID: modeConfigID,
		CharacterID:  characterID,
		Latest:       true,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&DailySelection{}).
			Where("date = ? AND mode_config_id = ? AND latest = ?", day, modeConfigID, true).
			Update("latest", false).Error; err != nil {
			return err
		}
		return tx.Create(&sel).Error
	})
	if err != nil {
		return nil, err
	}
	return &sel, nil
}
