package gamemode

import (
	"errors"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"gorm.io/gorm"
)

// CreateModeInput carries the fields accepted on mode creation.
type CreateModeInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Kind            Kind   `json:"kind" binding:"required"`
	IsActive        *bool  `json:"isActive"`
	BlurStart       int    `json:"blurStart"`
	BlurStep        int    `json:"blurStep"`
	BlurMin         int    `json:"blurMin"`
	UsesSecondImage bool   `json:"usesSecondImage"`
}

// UpdateModeInput carries the optional fields accepted on mode update.
type UpdateModeInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Kind            *Kind   `json:"kind"`
	IsActive        *bool   `json:"isActive"`
	BlurStart       *int    `json:"blurStart"`
	BlurStep        *int    `json:"blurStep"`
	BlurMin         *int    `json:"blurMin"`
	UsesSecondImage *bool   `json:"usesSecondImage"`
}

// CreateMode inserts a new mode configuration.
func CreateMode(input CreateModeInput) (*ModeConfig, error) {
	if !input.Kind.Valid() {
		return nil, apperr.BadRequest("unknown mode kind %q", input.Kind)
	}
	mode := ModeConfig{
		Name:            input.Name,
		Description:     input.Description,
		Kind:            input.Kind,
		IsActive:        true,
		BlurStart:       input.BlurStart,
		BlurStep:        input.BlurStep,
		BlurMin:         input.BlurMin,
		UsesSecondImage: input.UsesSecondImage,
	}
	if input.IsActive != nil {
		mode.IsActive = *input.IsActive
	}
	if err := database.DB.Create(&mode).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a mode named %q already exists", input.Name)
		}
		return nil, err
	}
	return &mode, nil
}

// FindAll returns every mode configuration.
func FindAll() ([]ModeConfig, error) {
	var modes []ModeConfig
	if err := database.DB.Order("id asc").Find(&modes).Error; err != nil {
		return nil, err
	}
	return modes, nil
}

// ActiveModes returns active modes in a stable order. The daily selection
// engine iterates this list, so the order must not vary between runs.
func ActiveModes() ([]ModeConfig, error) {
	var modes []ModeConfig
	if err := database.DB.Where("is_active = ?", true).Order("id asc").Find(&modes).Error; err != nil {
		return nil, err
	}
	return modes, nil
}

// FindByID fetches one mode configuration.
func FindByID(id uint) (*ModeConfig, error) {
	var mode ModeConfig
	if err := database.DB.First(&mode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("mode config %d not found", id)
		}
		return nil, err
	}
	return &mode, nil
}

// UpdateMode applies the provided fields to an existing mode.
func UpdateMode(id uint, input UpdateModeInput) (*ModeConfig, error) {
	mode, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		mode.Name = *input.Name
	}
	if input.Description != nil {
		mode.Description = *input.Description
	}
	if input.Kind != nil {
		if !input.Kind.Valid() {
			return nil, apperr.BadRequest("unknown mode kind %q", *input.Kind)
		}
		mode.Kind = *input.Kind
	}
	if input.IsActive != nil {
		mode.IsActive = *input.IsActive
	}
	if input.BlurStart != nil {
		mode.BlurStart = *input.BlurStart
	}
	if input.BlurStep != nil {
		mode.BlurStep = *input.BlurStep
	}
	if input.BlurMin != nil {
		mode.BlurMin = *input.BlurMin
	}
	if input.UsesSecondImage != nil {
		mode.UsesSecondImage = *input.UsesSecondImage
	}
	if err := database.DB.Save(mode).Error; err != nil {
		return nil, err
	}
	return mode, nil
}

// DeleteMode removes a mode configuration.
func DeleteMode(id uint) error {
	if _, err := FindByID(id); err != nil {
		return err
	}
	return database.DB.Delete(&ModeConfig{}, id).Error
}

// SeedDefaults creates the four stock modes when they do not exist yet.
// Existing rows are left untouched so admin edits survive restarts.
func SeedDefaults() error {
	defaults := []ModeConfig{
		{
			Name:        "Clássico",
			Description: "O jogo tradicional de adivinhação de personagens com dicas visuais",
			Kind:        KindClassic,
		},
		{
			Name:        "Emojis",
			Description: "Descubra o personagem através de pistas divertidas com emojis",
			Kind:        KindEmoji,
		},
		{
			Name:        "Descrição",
			Description: "Use descrições detalhadas para encontrar o personagem misterioso",
			Kind:        KindDescription,
		},
		{
			Name:            "Imagem",
			Description:     "Adivinhe o personagem com base em sua imagem desfocada",
			Kind:            KindImage,
			BlurStart:       20,
			BlurStep:        4,
			BlurMin:         0,
			UsesSecondImage: true,
		},
	}

	for _, mode := range defaults {
		var existing ModeConfig
		err := database.DB.Where("name = ?", mode.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		mode.IsActive = true
		if err := database.DB.Create(&mode).Error; err != nil {
			return err
		}
	}
	return nil
}
