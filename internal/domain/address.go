package domain

import (
	"time"
)

// Address is owned 1:1 by the principal it was created for. It is created
// before the principal (its id becomes a foreign key on the principal row)
// and has no independent lifecycle.
type Address struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CEP       string    `json:"cep"`
	Number    int       `json:"number"`
	CreatedAt time.Time `json:"created_at"`
}
