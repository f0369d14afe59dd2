package dto

// LoginRequest entrada para login con contraseña.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OTPRequest entrada para solicitar un código de un solo uso.
type OTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OTPVerifyRequest entrada para canjear el código por una sesión.
type OTPVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// SessionResponse salida con la sesión emitida por el proveedor.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds
	Email       string `json:"email"`
	Recovery    bool   `json:"recovery,omitempty"`
}

// UpdatePasswordRequest entrada para la actualización forzada de contraseña.
type UpdatePasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// IntakeVerifyResponse salida del gate público: token que ata el email
// verificado al envío de la sugerencia.
type IntakeVerifyResponse struct {
	Email       string `json:"email"`
	IntakeToken string `json:"intake_token"`
}
