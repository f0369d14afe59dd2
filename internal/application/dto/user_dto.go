package dto

import "time"

// InviteRequest entrada para invitar un usuario al panel.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InviteResponse salida de la invitación. Invitar y crear el perfil son
// pasos que fallan de forma independiente; ProfileCreated refleja el
// segundo.
type InviteResponse struct {
	IdentityID     string `json:"identity_id"`
	ProfileCreated bool   `json:"profile_created"`
}

// UpdateRoleRequest entrada para cambiar el rol de un perfil.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=viewer admin superadmin"`
}

// ResetPasswordRequest entrada para disparar el correo de restablecimiento.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ProfileResponse salida de un perfil del panel.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
