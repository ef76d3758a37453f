package inquiries

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrMissingName indicates the full name field was empty.
	ErrMissingName = errors.New("inquiries: name is required")
	// ErrMissingEmail indicates the work email field was empty.
	ErrMissingEmail = errors.New("inquiries: email is required")
	// ErrInvalidEmail indicates the email field is not a plausible address.
	ErrInvalidEmail = errors.New("inquiries: email is invalid")
	// ErrMissingPhone indicates the phone field was empty.
	ErrMissingPhone = errors.New("inquiries: phone is required")
	// ErrMissingMessage indicates the project details field was empty.
	ErrMissingMessage = errors.New("inquiries: message is required")
)

// Inquiry is one stored contact-form submission. Records are created exactly
// once and never mutated or deleted.
type Inquiry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Reference string    `gorm:"column:reference;size:190;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;size:190;not null"`
	Email     string    `gorm:"column:email;size:190;not null"`
	Phone     string    `gorm:"column:phone;size:64;not null"`
	Message   string    `gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

// TableName provides the explicit table binding for GORM.
func (Inquiry) TableName() string {
	return "inquiries"
}

// NewInquiry carries the validated contact-form fields at submit time.
type NewInquiry struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Validate checks required-ness of every field.
func (n NewInquiry) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return ErrMissingName
	}
	email := strings.TrimSpace(n.Email)
	if email == "" {
		return ErrMissingEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(n.Phone) == "" {
		return ErrMissingPhone
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrMissingMessage
	}
	return nil
}
