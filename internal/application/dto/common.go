package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse respuesta mínima de operaciones sin cuerpo (delete, register).
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DateLayout formato de fechas de negocio en la API (sale_date, purchase_date).
const DateLayout = "2006-01-02"
