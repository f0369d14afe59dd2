package entity

import "time"

// Profile es el registro de rol asociado 1:1 a una identidad del proveedor
// externo. El ID es el mismo id opaco de la identidad; Email es una copia
// desnormalizada para mostrar en el panel sin consultar al proveedor.
type Profile struct {
	ID        string
	Email     string
	Role      Role
	CreatedAt time.Time
}
