package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResultResponse resultado simple de una operación.
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
