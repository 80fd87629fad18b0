package entity

import "time"

// Customer cliente al que se vende. Referenciado por Sale.
type Customer struct {
	ID          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
}
