package dto

import "github.com/shopspring/decimal"

// StoreResponse tienda activa del usuario autenticado junto con su rol en ella.
type StoreResponse struct {
	ID        int64            `json:"id"`
	UUID      string           `json:"uuid"`
	Name      string           `json:"name"`
	Address   string           `json:"address,omitempty"`
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
	Status    bool             `json:"status"`
	Role      string           `json:"role"`
}
