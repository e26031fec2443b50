package model

import "time"

// Company represents a row of the `empresa` table.  A company owns its
// users and, through its drivers, the vehicle fleet.  Rows are created at
// registration and rarely mutated afterwards.
//
// Fields:
//
//	ID        – primary key (column `empresa_id`).
//	Nombre    – legal name.
//	NIT       – Colombian tax id.
//	Direccion – street address.
//	Telefono  – contact phone.
//	Email     – contact email.
type Company struct {
	ID        uint64    // empresa.empresa_id
	Nombre    string    // empresa.nombre
	NIT       string    // empresa.nit
	Direccion string    // empresa.direccion
	Telefono  string    // empresa.telefono
	Email     string    // empresa.email
	CreatedAt time.Time // empresa.created_at
}
