package domain

import (
	"time"
)

// Principal status values.
const (
	StatusActive   = 1
	StatusInactive = 0
)

// User represents a registered individual (student) account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CPF          string    `json:"cpf"`
	BirthDate    time.Time `json:"birth_date"`
	Phone        string    `json:"phone_user"`
	GenderID     int       `json:"gender_id"`
	EducationID  int       `json:"education_id"`
	Code         string    `json:"code_user"`
	RoleID       int       `json:"role_id"`
	Role         *Role     `json:"role,omitempty"`
	AddressID    string    `json:"address_id"`
	Address      *Address  `json:"address,omitempty"`
	Status       int       `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
