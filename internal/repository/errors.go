// Package repository implements the persistence layer over a shared
// *sql.DB pool.  This file defines sentinel errors reused across
// repositories so handlers can map failures to HTTP status codes without
// inspecting driver-level errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup or update matches no row.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("registro no encontrado")

// ErrEmailExists is returned when an insert violates the unique email
// constraint on usuarios.  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("el email ya está registrado")

// ErrAlreadyReviewed is returned when a status transition is attempted on
// an inspection that already left the pendiente state.  The review flow is
// one-shot; handlers translate this into HTTP 409.
var ErrAlreadyReviewed = errors.New("la inspección ya fue revisada")
