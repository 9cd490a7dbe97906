package play

import (
	"errors"
	"strings"
	"time"

	"github.com/charadle/charadle-backend/internal/character"
	"github.com/charadle/charadle-backend/internal/gamemode"
	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/selection"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner identifies who a play belongs to: a registered user or an anonymous
// guest, never both.
type Owner struct {
	UserID  *uint
	GuestID *string
}

// IsZero reports whether no identity is present at all.
func (o Owner) IsZero() bool {
	return o.UserID == nil && (o.GuestID == nil || *o.GuestID == "")
}

// owns reports whether this owner may act on the given play.
func (o Owner) owns(p *Play) bool {
	if p.UserID != nil {
		return o.UserID != nil && *o.UserID == *p.UserID
	}
	if p.GuestID != nil {
		return o.GuestID != nil && *o.GuestID == *p.GuestID
	}
	return false
}

// TargetView is the client-safe projection of the target character. The name
// is the answer, so it never leaves the server here.
type TargetView struct {
	Description string   `json:"description"`
	Emojis      []string `json:"emojis"`
	Gender      string   `json:"gender"`
	Race        []string `json:"race"`
	Ethnicity   []string `json:"ethnicity"`
	Hair        string   `json:"hair"`
	AliveStatus string   `json:"aliveStatus"`
	ImageURL1   *string  `json:"imageUrl1"`
	ImageURL2   *string  `json:"imageUrl2"`
}

func targetView(ch *character.Character) TargetView {
	return TargetView{
		Description: ch.Description,
		Emojis:      ch.Emojis,
		Gender:      ch.Gender,
		Race:        ch.Race,
		Ethnicity:   ch.Ethnicity,
		Hair:        ch.Hair,
		AliveStatus: ch.AliveStatus,
		ImageURL1:   ch.ImageURL1,
		ImageURL2:   ch.ImageURL2,
	}
}

// ModeView carries the display parameters the client needs to render a mode.
type ModeView struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Kind      gamemode.Kind `json:"kind"`
	BlurStart int           `json:"blurStart"`
	BlurStep  int           `json:"blurStep"`
	BlurMin   int           `json:"blurMin"`
}

func modeView(m *gamemode.ModeConfig) ModeView {
	return ModeView{
		ID:        m.ID,
		Name:      m.Name,
		Kind:      m.Kind,
		BlurStart: m.BlurStart,
		BlurStep:  m.BlurStep,
		BlurMin:   m.BlurMin,
	}
}

// StartPlayResult describes a started or resumed play.
type StartPlayResult struct {
	PlayID        uint       `json:"playId"`
	Completed     bool       `json:"completed"`
	AttemptsCount int        `json:"attemptsCount"`
	SelectionDate string     `json:"selectionDate"`
	GuestID       *string    `json:"guestId,omitempty"`
	Mode          ModeView   `json:"mode"`
	Character     TargetView `json:"character"`
}

// GuessResult describes one recorded guess.
type GuessResult struct {
	AttemptNumber   int        `json:"attemptNumber"`
	Guess           string     `json:"guess"`
	IsCorrect       bool       `json:"isCorrect"`
	PlayCompleted   bool       `json:"playCompleted"`
	GuessedImageURL *string    `json:"guessedImageUrl"`
	Comparison      Comparison `json:"comparison"`
	TriedAt         time.Time  `json:"triedAt"`
}

// StartPlay starts or resumes the owner's play for (mode, day). An anonymous
// caller without a guest id is issued a fresh one, returned in the result so
// the client can resume later.
func StartPlay(owner Owner, modeConfigID uint, day *time.Time) (*StartPlayResult, error) {
	selectionDate := gameday.Today()
	if day != nil {
		selectionDate = gameday.Start(*day)
	}

	issuedGuest := false
	if owner.IsZero() {
		guestID := uuid.NewString()
		owner.GuestID = &guestID
		issuedGuest = true
	}

	if !issuedGuest {
		existing, err := findPlayForDay(owner, modeConfigID, selectionDate)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return startResult(existing, owner), nil
		}
	}

	sel, err := selection.LatestByDayAndMode(modeConfigID, selectionDate)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("no character selected for this day")
		}
		return nil, err
	}

	p := Play{
		UserID:        owner.UserID,
		GuestID:       owner.GuestID,
		ModeConfigID:  modeConfigID,
		CharacterID:   sel.CharacterID,
		SelectionDate: selectionDate,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		// Lost a race against the same owner: the unique index is the
		// authoritative guard, resume the winning row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := findPlayForDay(owner, modeConfigID, selectionDate)
			if ferr == nil && existing != nil {
				return startResult(existing, owner), nil
			}
		}
		return nil, err
	}

	created, err := loadPlay(p.ID)
	if err != nil {
		return nil, err
	}
	return startResult(created, owner), nil
}

func startResult(p *Play, owner Owner) *StartPlayResult {
	result := &StartPlayResult{
		PlayID:        p.ID,
		Completed:     p.Completed,
		AttemptsCount: p.AttemptsCount,
		SelectionDate: gameday.FormatDay(p.SelectionDate),
		Mode:          modeView(&p.ModeConfig),
		Character:     targetView(&p.Character),
	}
	if p.UserID == nil {
		result.GuestID = owner.GuestID
	}
	return result
}

// MakeGuess records one guess against a play, returning the comparison
// payload for the guessed character.
func MakeGuess(owner Owner, playID uint, guessText string) (*GuessResult, error) {
	p, err := loadPlay(playID)
	if err != nil {
		return nil, err
	}
	if !owner.owns(p) {
		return nil, apperr.Forbidden("play %d does not belong to the caller", playID)
	}
	if p.Completed {
		return nil, apperr.BadRequest("play already completed")
	}

	guess := strings.TrimSpace(guessText)
	if guess == "" {
		return nil, apperr.BadRequest("guess must not be blank")
	}

	var existing int64
	err = database.DB.Model(&Attempt{}).
		Where("play_id = ? AND guess = ?", p.ID, guess).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.BadRequest("guess %q was already tried in this play", guess)
	}

	guessed, err := character.FindByName(guess)
	if err != nil {
		return nil, err
	}

	isCorrect := guessed.ID == p.CharacterID

	attempt := Attempt{
		PlayID:             p.ID,
		UserID:             p.UserID,
		GuestID:            p.GuestID,
		ModeConfigID:       p.ModeConfigID,
		TargetCharacterID:  p.CharacterID,
		GuessedCharacterID: guessed.ID,
		Guess:              guess,
		IsCorrect:          isCorrect,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&Attempt{}).Where("play_id = ?", p.ID).Count(&prior).Error; err != nil {
			return err
		}
		attempt.Order = int(prior) + 1

		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		updates := map[string]any{"attempts_count": gorm.Expr("attempts_count + 1")}
		if isCorrect {
			updates["completed"] = true
			updates["completed_at"] = time.Now()
		}
		return tx.Model(&Play{}).Where("id = ?", p.ID).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.BadRequest("guess %q was already tried in this play", guess)
		}
		return nil, err
	}

	return &GuessResult{
		AttemptNumber:   attempt.Order,
		Guess:           guess,
		IsCorrect:       isCorrect,
		PlayCompleted:   isCorrect,
		GuessedImageURL: displayImage(p.ModeConfig.Kind, guessed),
		Comparison:      BuildComparison(p.ModeConfig.Kind, guessed, &p.Character),
		TriedAt:         attempt.CreatedAt,
	}, nil
}

// ListAttempts reconstructs the guess results for every attempt of a play,
// in ascending attempt order, enforcing the same ownership rule as guessing.
func ListAttempts(owner Owner, playID uint) ([]GuessResult, error) {
	p, err := loadPlay(playID)
	if err != nil {
		return nil, err
	}
	if !owner.owns(p) {
		return nil, apperr.Forbidden("play %d does not belong to the caller", playID)
	}
	return attemptsForPlay(p)
}

// PlayProgress is the full client-facing state of one play.
type PlayProgress struct {
	PlayID        uint          `json:"playId"`
	Completed     bool          `json:"completed"`
	CompletedAt   *time.Time    `json:"completedAt"`
	AttemptsCount int           `json:"attemptsCount"`
	SelectionDate string        `json:"selectionDate"`
	Mode          ModeView      `json:"mode"`
	Character     TargetView    `json:"character"`
	Attempts      []GuessResult `json:"attempts"`
}

// Progress returns the play state plus its reconstructed attempts.
func Progress(owner Owner, playID uint) (*PlayProgress, error) {
	p, err := loadPlay(playID)
	if err != nil {
		return nil, err
	}
	if !owner.owns(p) {
		return nil, apperr.Forbidden("play %d does not belong to the caller", playID)
	}
	attempts, err := attemptsForPlay(p)
	if err != nil {
		return nil, err
	}
	return &PlayProgress{
		PlayID:        p.ID,
		Completed:     p.Completed,
		CompletedAt:   p.CompletedAt,
		AttemptsCount: p.AttemptsCount,
		SelectionDate: gameday.FormatDay(p.SelectionDate),
		Mode:          modeView(&p.ModeConfig),
		Character:     targetView(&p.Character),
		Attempts:      attempts,
	}, nil
}

// ProgressByMode returns the owner's progress for (mode, today), or nil when
// no play was started yet.
func ProgressByMode(owner Owner, modeConfigID uint) (*PlayProgress, error) {
	if owner.IsZero() {
		return nil, nil
	}
	p, err := findPlayForDay(owner, modeConfigID, gameday.Today())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return Progress(owner, p.ID)
}

// --- internals ---

func loadPlay(playID uint) (*Play, error) {
	var p Play
	err := database.DB.
		Preload("Character.Franchises.Franchise").
		Preload("ModeConfig").
		First(&p, playID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("play %d not found", playID)
		}
		return nil, err
	}
	return &p, nil
}

func findPlayForDay(owner Owner, modeConfigID uint, day time.Time) (*Play, error) {
	query := database.DB.
		Preload("Character.Franchises.Franchise").
		Preload("ModeConfig").
		Where("mode_config_id = ? AND selection_date = ?", modeConfigID, day)
	if owner.UserID != nil {
		query = query.Where("user_id = ?", *owner.UserID)
	} else {
		query = query.Where("guest_id = ?", *owner.GuestID)
	}
	var p Play
	if err := query.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func attemptsForPlay(p *Play) ([]GuessResult, error) {
	var attempts []Attempt
	err := database.DB.
		Preload("GuessedCharacter.Franchises.Franchise").
		Where("play_id = ?", p.ID).
		Order("attempt_order asc, id asc").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	results := make([]GuessResult, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		results = append(results, GuessResult{
			AttemptNumber:   a.Order,
			Guess:           a.Guess,
			IsCorrect:       a.IsCorrect,
			PlayCompleted:   a.IsCorrect,
			GuessedImageURL: displayImage(p.ModeConfig.Kind, &a.GuessedCharacter),
			Comparison:      BuildComparison(p.ModeConfig.Kind, &a.GuessedCharacter, &p.Character),
			TriedAt:         a.CreatedAt,
		})
	}
	return results, nil
}

// displayImage picks the image shown for a guessed character: the image mode
// reveals the secondary image, every other mode the primary one.
func displayImage(kind gamemode.Kind, ch *character.Character) *string {
	if kind == gamemode.KindImage && ch.ImageURL2 != nil {
		return ch.ImageURL2
	}
	return ch.ImageURL1
}
