package reviews

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrMissingName indicates the reviewer name was empty.
	ErrMissingName = errors.New("reviews: name is required")
	// ErrMissingRole indicates the title/company field was empty.
	ErrMissingRole = errors.New("reviews: role is required")
	// ErrMissingContent indicates the review text was empty.
	ErrMissingContent = errors.New("reviews: content is required")
	// ErrRatingOutOfRange indicates the star rating is not an integer 1-5.
	// An unset rating (zero) is refused before any write happens.
	ErrRatingOutOfRange = errors.New("reviews: rating must be between 1 and 5")
)

// Review is one stored client review. The verified flag defaults to false
// and is never set true by this system.
type Review struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string    `gorm:"column:name;size:190;not null"`
	Role       string    `gorm:"column:role;size:190;not null"`
	Content    string    `gorm:"column:content;type:text;not null"`
	Rating     int       `gorm:"column:rating;not null"`
	IsVerified bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index"`
}

// TableName provides the explicit table binding for GORM.
func (Review) TableName() string {
	return "reviews"
}

// NewReview carries the validated review-form fields at submit time.
type NewReview struct {
	Name    string
	Role    string
	Content string
	Rating  int
}

// Validate checks required-ness and the rating bounds.
func (n NewReview) Validate() error {
	if n.Rating < 1 || n.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if strings.TrimSpace(n.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(n.Role) == "" {
		return ErrMissingRole
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrMissingContent
	}
	return nil
}
