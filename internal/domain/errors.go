package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes de ErrInvalidCredentials y ErrInvalidOTP son los textos
// estables que reemplazan la redacción cruda del proveedor de identidad
// antes de llegar al usuario.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProfileNotFound    = errors.New("perfil no encontrado")
	ErrSuggestionNotFound = errors.New("sugerencia no encontrada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas, verificá tu email y contraseña")
	ErrInvalidOTP         = errors.New("código inválido o expirado")
	ErrWeakPassword       = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrNotAuthenticated   = errors.New("no autenticado")
	ErrPermissionDenied   = errors.New("acceso denegado")
	ErrSendFailure        = errors.New("no se pudo enviar el correo")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrInvalidStatus      = errors.New("estado inválido")
	ErrTooManyImages      = errors.New("máximo 5 imágenes permitidas")
	ErrImageTooLarge      = errors.New("la imagen supera el máximo de 5MB")
)
