package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinReviewRating     = 1
	MaxReviewRating     = 5
	MaxReviewCommentLen = 500
)

// Review is a user's rating of a hospital. At most one review exists per
// (HospitalID, UserID); the unique index enforces it.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_reviews_hospital_user" json:"hospital_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_hospital_user;index" json:"user_id"`
	UserName   string    `gorm:"type:varchar(255);not null" json:"user_name"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:varchar(500)" json:"comment,omitempty"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether rating is within the accepted 1..5 range.
func ValidRating(rating int) bool {
	return rating >= MinReviewRating && rating <= MaxReviewRating
}
