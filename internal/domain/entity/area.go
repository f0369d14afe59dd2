package entity

import "time"

// Area taxonomía libre creada por superadmin. Las sugerencias la referencian
// por area_id sin ownership: borrar un área no borra sugerencias, el FK queda
// resuelto a null.
type Area struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
