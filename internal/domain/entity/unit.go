package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit fila de la tabla de conversión: factor multiplicativo hacia la unidad base (gramos).
type Unit struct {
	Name      string
	Factor    decimal.Decimal
	CreatedAt time.Time
}
