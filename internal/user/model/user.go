package model

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that can log in.
type User struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex:idx_users_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(16);not null" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Public returns the fields of u that clients may see.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}
