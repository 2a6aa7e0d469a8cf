package domain

import "time"

// Purchase records a simulated sale. No chain transaction backs it; the
// transaction hash is generated locally.
type Purchase struct {
	ID              string
	WearableID      string
	Buyer           string
	Seller          string
	Price           float64
	Currency        Currency
	TransactionHash string
	Timestamp       time.Time
}
