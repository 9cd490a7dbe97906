package franchise

import (
	"errors"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/platform/imagestore"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"gorm.io/gorm"
)

// CreateFranchiseInput carries the fields accepted on creation.
type CreateFranchiseInput struct {
	Name     string  `json:"name" binding:"required"`
	ImageURL *string `json:"imageUrl"`
}

// UpdateFranchiseInput carries the optional fields accepted on update.
type UpdateFranchiseInput struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
}

// Create inserts a new franchise.
func Create(input CreateFranchiseInput) (*Franchise, error) {
	f := Franchise{Name: input.Name, ImageURL: input.ImageURL}
	if err := database.DB.Create(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a franchise named %q already exists", input.Name)
		}
		return nil, err
	}
	return &f, nil
}

// FindAll lists every franchise.
func FindAll() ([]Franchise, error) {
	var franchises []Franchise
	if err := database.DB.Order("name asc").Find(&franchises).Error; err != nil {
		return nil, err
	}
	return franchises, nil
}

// FindByID fetches one franchise.
func FindByID(id uint) (*Franchise, error) {
	var f Franchise
	if err := database.DB.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("franchise %d not found", id)
		}
		return nil, err
	}
	return &f, nil
}

// Update applies the provided fields to an existing franchise. A replaced
// image is deleted from the external store.
func Update(id uint, input UpdateFranchiseInput) (*Franchise, error) {
	f, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		f.Name = *input.Name
	}
	if input.ImageURL != nil {
		if f.ImageURL != nil && *f.ImageURL != *input.ImageURL {
			if publicID := imagestore.PublicIDFromURL(*f.ImageURL); publicID != "" {
				_ = imagestore.Default.Delete(publicID)
			}
		}
		f.ImageURL = input.ImageURL
	}
	if err := database.DB.Save(f).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a franchise named %q already exists", f.Name)
		}
		return nil, err
	}
	return f, nil
}

// Delete removes a franchise and its character links.
func Delete(id uint) error {
	f, err := FindByID(id)
	if err != nil {
		return err
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM character_franchises WHERE franchise_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Franchise{}, id).Error; err != nil {
			return err
		}
		if f.ImageURL != nil {
			if publicID := imagestore.PublicIDFromURL(*f.ImageURL); publicID != "" {
				_ = imagestore.Default.Delete(publicID)
			}
		}
		return nil
	})
}
