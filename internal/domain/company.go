package domain

import (
	"time"
)

// Company represents a registered employer account.
type Company struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TradeName    string    `json:"trade_name"`
	CNPJ         string    `json:"cnpj"`
	ContactName  string    `json:"responsible_name"`
	Phone        string    `json:"phone_enterprises"`
	WhatsApp     string    `json:"whatsapp,omitempty"`
	Code         string    `json:"code_enterprises"`
	RoleID       int       `json:"role_id"`
	Role         *Role     `json:"role,omitempty"`
	AddressID    string    `json:"address_id"`
	Address      *Address  `json:"address,omitempty"`
	Status       int       `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
