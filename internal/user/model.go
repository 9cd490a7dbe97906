package user

import "time"

// Roles a user account can hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered account. Refresh tokens are stored hashed only; the
// raw value lives exclusively on the client.
type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Username string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:16;not null;default:USER" json:"role"`

	AvatarIconURL string `json:"avatarIconUrl"`

	IsEmailVerified      bool       `gorm:"not null;default:false" json:"isEmailVerified"`
	EmailVerifyToken     *string    `gorm:"size:64;index" json:"-"`
	EmailVerifyExpiresAt *time.Time `json:"-"`

	RefreshTokenHash      *string    `gorm:"size:64;index" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SafeUser is the projection served to clients: no hashes, no tokens.
type SafeUser struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	AvatarIconURL   string    `json:"avatarIconUrl"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Sanitize converts a User into its client-safe projection.
func (u *User) Sanitize() SafeUser {
	return SafeUser{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		Role:            u.Role,
		AvatarIconURL:   u.AvatarIconURL,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
