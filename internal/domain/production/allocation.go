package production

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/semillas-api/internal/domain"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

// MinKgPerUnit peso mínimo por unidad de presentación.
var MinKgPerUnit = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// IsValidPresentation indica si p es una presentación admitida.
func IsValidPresentation(p string) bool {
	switch p {
	case entity.PresentationBolsas, entity.PresentationLatas, entity.PresentationBaldes:
		return true
	}
	return false
}

// BatchTotalKg kilos de un lote: unidades × kg por unidad, a dos decimales.
func BatchTotalKg(units int, kgPerUnit decimal.Decimal) decimal.Decimal {
	return kgPerUnit.Mul(decimal.NewFromInt(int64(units))).Round(KgScale)
}

// AvailableWeight peso neto de la orden menos lo ya comprometido en lotes.
func AvailableWeight(netWeight, allocatedKg decimal.Decimal) decimal.Decimal {
	return netWeight.Sub(allocatedKg)
}

// ValidateBatchQuantities valida unidades, kg por unidad y presentación de un lote.
func ValidateBatchQuantities(units int, kgPerUnit decimal.Decimal, presentation string) error {
	if units < 1 {
		return domain.Invalid("units", "debe ser al menos 1")
	}
	if kgPerUnit.LessThan(MinKgPerUnit) {
		return domain.Invalid("kg_per_unit", fmt.Sprintf("debe ser al menos %s", MinKgPerUnit.StringFixed(KgScale)))
	}
	if !kgPerUnit.Equal(kgPerUnit.Round(KgScale)) {
		return domain.Invalid("kg_per_unit", fmt.Sprintf("admite como máximo %d decimales", KgScale))
	}
	if !IsValidPresentation(presentation) {
		return domain.Invalid("presentation", "debe ser bolsas, latas o baldes")
	}
	return nil
}

// CheckWeightCap verifica que totalKg quepa en el peso disponible. Nunca recorta:
// si no cabe devuelve el déficit exacto para que el caller corrija la entrada.
func CheckWeightCap(orderID string, totalKg, available decimal.Decimal) error {
	if totalKg.GreaterThan(available) {
		return &domain.InsufficientWeightError{OrderID: orderID, Requested: totalKg, Available: available}
	}
	return nil
}

// LotNumber número de lote legible: número de orden + secuencia de lote dentro de la orden.
func LotNumber(orderNumber string, seq int) string {
	return fmt.Sprintf("%s-L%03d", orderNumber, seq)
}

// Progress avance de producción de una orden de ingreso.
type Progress struct {
	NetWeight   decimal.Decimal
	ProducedKg  decimal.Decimal
	AvailableKg decimal.Decimal
	PercentUsed decimal.Decimal
}

// ProductionProgress deriva el avance a partir del peso neto y los kilos asignados.
func ProductionProgress(netWeight, producedKg decimal.Decimal) Progress {
	p := Progress{
		NetWeight:   netWeight,
		ProducedKg:  producedKg,
		AvailableKg: AvailableWeight(netWeight, producedKg),
		PercentUsed: decimal.Zero,
	}
	if netWeight.IsPositive() {
		p.PercentUsed = producedKg.Div(netWeight).Mul(hundred).Round(2)
	}
	return p
}
