package character

import (
	"errors"
	"strings"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/platform/imagestore"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"gorm.io/gorm"
)

// CreateCharacterInput carries the fields accepted on creation.
type CreateCharacterInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Emojis        []string `json:"emojis"`
	Gender        string   `json:"gender"`
	Race          []string `json:"race"`
	Ethnicity     []string `json:"ethnicity"`
	Hair          string   `json:"hair"`
	AliveStatus   string   `json:"aliveStatus"`
	IsProtagonist bool     `json:"isProtagonist"`
	IsAntagonist  bool     `json:"isAntagonist"`
	ImageURL1     *string  `json:"imageUrl1"`
	ImageURL2     *string  `json:"imageUrl2"`
	FranchiseIDs  []uint   `json:"franchiseIds"`
}

// UpdateCharacterInput carries the optional fields accepted on update.
// A non-nil FranchiseIDs replaces the whole link set.
type UpdateCharacterInput struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Emojis        *[]string `json:"emojis"`
	Gender        *string   `json:"gender"`
	Race          *[]string `json:"race"`
	Ethnicity     *[]string `json:"ethnicity"`
	Hair          *string   `json:"hair"`
	AliveStatus   *string   `json:"aliveStatus"`
	IsProtagonist *bool     `json:"isProtagonist"`
	IsAntagonist  *bool     `json:"isAntagonist"`
	ImageURL1     *string   `json:"imageUrl1"`
	ImageURL2     *string   `json:"imageUrl2"`
	FranchiseIDs  *[]uint   `json:"franchiseIds"`
}

// Create inserts a new character with its franchise links.
func Create(input CreateCharacterInput) (*Character, error) {
	ch := Character{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Emojis:        input.Emojis,
		Gender:        input.Gender,
		Race:          input.Race,
		Ethnicity:     input.Ethnicity,
		Hair:          input.Hair,
		AliveStatus:   input.AliveStatus,
		IsProtagonist: input.IsProtagonist,
		IsAntagonist:  input.IsAntagonist,
		ImageURL1:     input.ImageURL1,
		ImageURL2:     input.ImageURL2,
	}
	if ch.Name == "" {
		return nil, apperr.BadRequest("character name must not be blank")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ch).Error; err != nil {
			return err
		}
		return replaceFranchiseLinks(tx, ch.ID, input.FranchiseIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a character named %q already exists", ch.Name)
		}
		return nil, err
	}
	return FindByID(ch.ID)
}

// FindAll lists all characters with their franchises preloaded.
func FindAll() ([]Character, error) {
	var chars []Character
	err := database.DB.
		Preload("Franchises.Franchise").
		Order("name asc").
		Find(&chars).Error
	if err != nil {
		return nil, err
	}
	return chars, nil
}

// FindByID fetches one character with its franchises preloaded.
func FindByID(id uint) (*Character, error) {
	var ch Character
	err := database.DB.
		Preload("Franchises.Franchise").
		First(&ch, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("character %d not found", id)
		}
		return nil, err
	}
	return &ch, nil
}

// FindByName resolves a character by exact (trimmed) name.
func FindByName(name string) (*Character, error) {
	var ch Character
	err := database.DB.
		Preload("Franchises.Franchise").
		Where("name = ?", strings.TrimSpace(name)).
		First(&ch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("character %q not found", name)
		}
		return nil, err
	}
	return &ch, nil
}

// Update applies the provided fields, replacing franchise links when given.
func Update(id uint, input UpdateCharacterInput) (*Character, error) {
	ch, err := FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		ch.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		ch.Description = *input.Description
	}
	if input.Emojis != nil {
		ch.Emojis = *input.Emojis
	}
	if input.Gender != nil {
		ch.Gender = *input.Gender
	}
	if input.Race != nil {
		ch.Race = *input.Race
	}
	if input.Ethnicity != nil {
		ch.Ethnicity = *input.Ethnicity
	}
	if input.Hair != nil {
		ch.Hair = *input.Hair
	}
	if input.AliveStatus != nil {
		ch.AliveStatus = *input.AliveStatus
	}
	if input.IsProtagonist != nil {
		ch.IsProtagonist = *input.IsProtagonist
	}
	if input.IsAntagonist != nil {
		ch.IsAntagonist = *input.IsAntagonist
	}
	if input.ImageURL1 != nil {
		ch.ImageURL1 = input.ImageURL1
	}
	if input.ImageURL2 != nil {
		ch.ImageURL2 = input.ImageURL2
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Franchises").Save(ch).Error; err != nil {
			return err
		}
		if input.FranchiseIDs != nil {
			if err := tx.Where("character_id = ?", id).Delete(&CharacterFranchise{}).Error; err != nil {
				return err
			}
			return replaceFranchiseLinks(tx, id, *input.FranchiseIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a character named %q already exists", ch.Name)
		}
		return nil, err
	}
	return FindByID(id)
}

// ReplaceImage swaps the primary image, deleting the previous object from
// the external store.
func ReplaceImage(id uint, imageURL string) (*Character, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, apperr.BadRequest("imageUrl1 must not be blank")
	}
	ch, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if ch.ImageURL1 != nil {
		if publicID := imagestore.PublicIDFromURL(*ch.ImageURL1); publicID != "" {
			_ = imagestore.Default.Delete(publicID)
		}
	}
	if err := database.DB.Model(&Character{ID: id}).Update("image_url1", imageURL).Error; err != nil {
		return nil, err
	}
	return FindByID(id)
}

// DeleteImage removes the primary image.
func DeleteImage(id uint) (*Character, error) {
	ch, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if ch.ImageURL1 == nil {
		return nil, apperr.BadRequest("character has no image to delete")
	}
	if publicID := imagestore.PublicIDFromURL(*ch.ImageURL1); publicID != "" {
		_ = imagestore.Default.Delete(publicID)
	}
	if err := database.DB.Model(&Character{ID: id}).Update("image_url1", nil).Error; err != nil {
		return nil, err
	}
	return FindByID(id)
}

// Delete hard-deletes a character and everything referencing it: franchise
// links, plays, attempts and daily-selection history. This is the documented
// cascade policy; leaderboard snapshots built earlier keep their denormalized
// rows, but rebuilds after the delete no longer see the character's plays.
func Delete(id uint) error {
	if _, err := FindByID(id); err != nil {
		return err
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("character_id = ?", id).Delete(&CharacterFranchise{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM attempts WHERE target_character_id = ? OR guessed_character_id = ?", id, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM plays WHERE character_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM daily_selections WHERE character_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Character{}, id).Error
	})
}

func replaceFranchiseLinks(tx *gorm.DB, characterID uint, franchiseIDs []uint) error {
	for _, fid := range franchiseIDs {
		link := CharacterFranchise{CharacterID: characterID, FranchiseID: fid}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
