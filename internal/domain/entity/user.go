package entity

// Roles válidos. El token los emite el servicio de autenticación.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
	RoleVendedor = "vendedor"
)

// Actor usuario que ejecuta una operación, tal como viene en el token.
// UnitID es la sede a la que pertenece; admin opera sobre todas.
type Actor struct {
	UserID string
	UnitID string
	Role   string // admin, operador, vendedor
}

// IsAdmin alcance administrativo (todas las sedes).
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccessUnit indica si el actor puede operar sobre recursos de la sede.
func (a Actor) CanAccessUnit(unitID string) bool {
	return a.IsAdmin() || (a.UnitID != "" && a.UnitID == unitID)
}

// CanDiscard solo admin y operador pueden descartar lotes.
func (a Actor) CanDiscard() bool {
	return a.Role == RoleAdmin || a.Role == RoleOperador
}
