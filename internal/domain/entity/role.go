package entity

import "github.com/aportes-sugerencias/sugerencias-api/internal/domain"

// Role es la enumeración cerrada de roles del panel administrativo.
type Role string

// Roles válidos para Profile.
const (
	RoleViewer     Role = "viewer"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// capabilities tabla de capacidades por rol. Los predicados consultan esta
// tabla en lugar de comparar strings en cada call site.
var capabilities = map[Role]struct {
	manageUsers bool
	manageAreas bool
}{
	RoleViewer:     {manageUsers: false, manageAreas: false},
	RoleAdmin:      {manageUsers: true, manageAreas: false},
	RoleSuperadmin: {manageUsers: true, manageAreas: true},
}

// ParseRole valida y convierte un string a Role. Es total: cualquier valor
// fuera de la enumeración retorna ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := capabilities[r]; !ok {
		return "", domain.ErrInvalidRole
	}
	return r, nil
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// CanManageUsers indica si el rol puede gestionar usuarios y sugerencias.
func (r Role) CanManageUsers() bool { return capabilities[r].manageUsers }

// CanManageAreas indica si el rol puede gestionar áreas (solo superadmin).
func (r Role) CanManageAreas() bool { return capabilities[r].manageAreas }
