package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a kitchen member. Registration/OTP flows live outside
// this service; users are provisioned directly and log in with email and
// password.
type User struct {
	BaseModel
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, hidden from JSON
	Name      string     `gorm:"type:varchar(255)" json:"name" validate:"required"`
	KitchenID *uuid.UUID `gorm:"type:uuid;index" json:"kitchen_id,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// UserResponse is used for API responses (without sensitive data).
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	KitchenID *uuid.UUID `json:"kitchen_id,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		KitchenID: u.KitchenID,
		IsActive:  u.IsActive,
	}
}
