package entity

import "time"

// Category agrupa productos. Referenciada (no poseída) por Product.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
