package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a QuickCare account. Password is empty for accounts created
// through Google sign-in.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:text" json:"-"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	GoogleID     *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	Avatar       string    `gorm:"type:text" json:"avatar,omitempty"`
	IsGoogleUser bool      `gorm:"not null;default:false" json:"is_google_user"`
	Role         string    `gorm:"type:varchar(32);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// LinkGoogle attaches a federated Google identity to the account.
func (u *User) LinkGoogle(googleID, avatar string) {
	u.GoogleID = &googleID
	if avatar != "" {
		u.Avatar = avatar
	}
	u.IsGoogleUser = true
}
