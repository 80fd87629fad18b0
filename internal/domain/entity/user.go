package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole indica si r es un rol reconocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff
}

// User representa un usuario del sistema. Se crea por registro de un admin y nunca se elimina.
type User struct {
	ID           string
	Username     string // único, normalizado NFC
	PasswordHash string // bcrypt
	Role         string // admin, staff
	CreatedAt    time.Time
}
