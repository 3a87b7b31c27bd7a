package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de producción.
const (
	BatchStatusDisponible          = "disponible"
	BatchStatusParcialmenteVendido = "parcialmente_vendido"
	BatchStatusVendido             = "vendido"
	BatchStatusReservado           = "reservado"
	BatchStatusDescartado          = "descartado"
)

// Presentaciones (unidad de medida de venta) de un lote.
const (
	PresentationBolsas = "bolsas"
	PresentationLatas  = "latas"
	PresentationBaldes = "baldes"
)

// ProductionBatch lote de producción: la unidad de inventario vendible.
// OriginalUnits/OriginalKg son la foto inmutable tomada al crear el lote;
// CurrentUnits/CurrentKg se mueven solo a través del libro de movimientos.
type ProductionBatch struct {
	ID            string
	IntakeOrderID string
	UnitID        string
	VarietyID     string
	CategoryID    string
	LotNumber     string
	Presentation  string
	KgPerUnit     decimal.Decimal
	OriginalUnits int
	OriginalKg    decimal.Decimal
	CurrentUnits  int
	CurrentKg     decimal.Decimal
	Status        string
	CreatedAt     time.Time
	CreatedBy     string
	UpdatedAt     time.Time
}
