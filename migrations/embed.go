// Package migrations esquema de la base embebido en el binario.
package migrations

import "embed"

// FS archivos NNNN_nombre.sql en orden de aplicación.
//
//go:embed *.sql
var FS embed.FS
