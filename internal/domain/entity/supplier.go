package entity

import "time"

// Supplier proveedor de mercancía. Referenciado por Product y Purchase.
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
}
