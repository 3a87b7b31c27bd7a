package repository

import "context"

// SequenceRepository numerador de secuencias por clave (lotes por orden, números de orden de salida).
// Next incrementa y devuelve el siguiente valor de forma atómica dentro de la transacción.
type SequenceRepository interface {
	Next(ctx context.Context, key string) (int, error)
}
