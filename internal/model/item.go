package model

import (
	"math"
	"strings"
	"time"
)

// ListItem is a single entry within a shopping list.
type ListItem struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
	IsChecked bool      `json:"is_checked"`
	Barcode   string    `json:"barcode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemTotal is the line total stored with every item.
func ItemTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// ValidateName rejects blank item and list names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

// ValidateQuantity requires a positive, finite quantity.
func ValidateQuantity(quantity float64) error {
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidateUnitPrice requires a non-negative, finite price.
func ValidateUnitPrice(price float64) error {
	if !(price >= 0) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	return nil
}
