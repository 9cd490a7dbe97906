package user

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charadle/charadle-backend/internal/platform/database"
	"github.com/charadle/charadle-backend/internal/platform/mailer"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// verificationTTL is how long an email-verification link stays valid.
const verificationTTL = 24 * time.Hour

// CreateUserInput carries the registration fields.
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserInput carries the optional self-service update fields.
type UpdateUserInput struct {
	Username      *string `json:"username"`
	Password      *string `json:"password"`
	AvatarIconURL *string `json:"avatarIconUrl"`
}

// defaultAvatar derives a deterministic avatar for a fresh account.
func defaultAvatar(username string) string {
	return "https://api.dicebear.com/9.x/shapes/svg?seed=" + url.QueryEscape(username)
}

// Create registers a new account and sends the verification email. Duplicate
// email or username is a user-facing error, not a 500.
func Create(input CreateUserInput) (*SafeUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	var existing User
	err := database.DB.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		if existing.Email == email {
			return nil, apperr.BadRequest("an account with this email already exists")
		}
		return nil, apperr.BadRequest("this username is already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	verifyToken := uuid.NewString()
	verifyExpiry := time.Now().Add(verificationTTL)

	u := User{
		Email:                email,
		Username:             username,
		Password:             string(hashed),
		Role:                 RoleUser,
		AvatarIconURL:        defaultAvatar(username),
		EmailVerifyToken:     &verifyToken,
		EmailVerifyExpiresAt: &verifyExpiry,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.BadRequest("an account with this email or username already exists")
		}
		return nil, err
	}

	if err := mailer.SendEmailVerification(u.Email, verifyToken); err != nil {
		// Account creation stands; the user can ask for a resend.
		log.Warn().Err(err).Str("email", u.Email).Msg("verification email delivery failed")
	}

	safe := u.Sanitize()
	return &safe, nil
}

// FindAll lists every account in client-safe form.
func FindAll() ([]SafeUser, error) {
	var users []User
	if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]SafeUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Sanitize())
	}
	return out, nil
}

// FindByID fetches one account.
func FindByID(id uint) (*User, error) {
	var u User
	if err := database.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches one account by email, or NotFound.
func FindByEmail(email string) (*User, error) {
	var u User
	err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with email %q not found", email)
		}
		return nil, err
	}
	return &u, nil
}

// Update applies self-service changes to an account.
func Update(id uint, input UpdateUserInput) (*SafeUser, error) {
	u, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if input.Username != nil {
		u.Username = strings.TrimSpace(*input.Username)
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, apperr.BadRequest("password must have at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hashed)
	}
	if input.AvatarIconURL != nil {
		u.AvatarIconURL = *input.AvatarIconURL
	}
	if err := database.DB.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.BadRequest("this username is already taken")
		}
		return nil, err
	}
	safe := u.Sanitize()
	return &safe, nil
}

// Delete removes an account.
func Delete(id uint) error {
	if _, err := FindByID(id); err != nil {
		return err
	}
	return database.DB.Delete(&User{}, id).Error
}

// CheckPassword compares a candidate password against the stored hash.
func CheckPassword(u *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// SeedAdmin upserts the configured admin account at startup. The password is
// only set on first creation, so a rotated config value never silently locks
// out a live deployment.
func SeedAdmin(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var existing User
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	admin := User{
		Email:           email,
		Username:        "admin",
		Password:        string(hashed),
		Role:            RoleAdmin,
		AvatarIconURL:   defaultAvatar("admin"),
		IsEmailVerified: true,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("unable to seed admin user: %w", err)
	}
	log.Info().Str("email", email).Msg("admin user seeded")
	return nil
}
