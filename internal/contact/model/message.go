// Package model provides domain models and DTOs for contact module.
package model

import (
	"strings"
	"time"

	"github.com/clubdesk/matchday/internal/apperr"
)

// ErrFieldsRequired indicates a contact message with a blank field.
var ErrFieldsRequired = apperr.Validation("name, email and message are required")

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// SubmitRequest is the body of POST /api/contact.
type SubmitRequest struct {
	Name    string `json:"name" validate:"max=255"`
	Email   string `json:"email" validate:"max=255"`
	Message string `json:"message" validate:"max=5000"`
}

// Normalize trims every field.
func (r *SubmitRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

// SubmitResponse confirms a stored message.
type SubmitResponse struct {
	Message string `json:"message"`
}
