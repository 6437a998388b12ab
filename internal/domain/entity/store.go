package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store representa una sucursal (física o lógica) donde se vende.
type Store struct {
	ID        int64
	UUID      string
	Name      string
	Address   string
	Latitude  decimal.NullDecimal // NUMERIC(10,7)
	Longitude decimal.NullDecimal
	Status    bool // activa / inactiva
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
