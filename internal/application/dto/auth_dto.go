package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest alta de usuario (solo admin).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | staff
}

// UserResponse identidad pública del usuario (sin password).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse salida del login. El token solo viaja en la cookie http-only;
// los clientes API lo toman del Set-Cookie para usarlo como Bearer.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// LogoutResponse salida del logout.
type LogoutResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

// MeResponse usuario actual (nil si no hay sesión).
type MeResponse struct {
	User *UserResponse `json:"user"`
}

// RegisterResponse salida del alta de usuario.
type RegisterResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}
