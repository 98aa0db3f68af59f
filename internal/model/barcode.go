package model

import "time"

// BarcodePrice is one observation of a product's unit price.
type BarcodePrice struct {
	ID        int64     `json:"id"`
	Barcode   string    `json:"barcode"`
	UnitPrice float64   `json:"unit_price"`
	DateSeen  time.Time `json:"date_seen"`
}
