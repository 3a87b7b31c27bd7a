package entity

// Variety variedad de semilla (dato maestro, solo lectura para este servicio).
type Variety struct {
	ID       string
	Name     string
	SeedName string // nombre de la semilla (ej. "Soja")
}

// Unit sede o planta donde se recibe y se almacena la semilla.
type Unit struct {
	ID      string
	Name    string
	Address string
}
