package production

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

var printer = message.NewPrinter(language.Spanish)

var presentationSingular = map[string]string{
	entity.PresentationBolsas: "bolsa",
	entity.PresentationLatas:  "lata",
	entity.PresentationBaldes: "balde",
}

// PresentationLabel "1 bolsa", "3 bolsas".
func PresentationLabel(presentation string, units int) string {
	if units == 1 || units == -1 {
		if s, ok := presentationSingular[presentation]; ok {
			return printer.Sprintf("%d %s", units, s)
		}
	}
	return printer.Sprintf("%d %s", units, presentation)
}

// FormatKg kilos con separadores del español: "12.345,50 kg".
// Trabaja sobre el texto decimal para no perder precisión.
func FormatKg(kg decimal.Decimal) string {
	s := kg.StringFixed(KgScale)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	b.WriteString(" kg")
	return b.String()
}

var statusLabels = map[string]string{
	entity.BatchStatusDisponible:          "Disponible",
	entity.BatchStatusParcialmenteVendido: "Parcialmente vendido",
	entity.BatchStatusVendido:             "Vendido",
	entity.BatchStatusReservado:           "Reservado",
	entity.BatchStatusDescartado:          "Descartado",
}

// StatusLabel etiqueta legible de un estado de lote.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

var movementLabels = map[string]string{
	entity.MovementTypeEntrada: "Entrada",
	entity.MovementTypeSalida:  "Salida",
	entity.MovementTypeAjuste:  "Ajuste",
	entity.MovementTypeMerma:   "Merma",
}

// MovementTypeLabel etiqueta legible de un tipo de movimiento.
func MovementTypeLabel(t string) string {
	if l, ok := movementLabels[t]; ok {
		return l
	}
	return t
}
