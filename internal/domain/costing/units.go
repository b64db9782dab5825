// Package costing contiene el motor de costeo de recetas (servicio de dominio).
// Calcula costo y peso recorriendo el grafo de ingredientes con profundidad acotada.
package costing

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// unitAliases abreviaturas y sinónimos → nombre canónico registrado.
// Se consulta antes que el registro.
var unitAliases = map[string]string{
	"g":            "gram",
	"gr":           "gram",
	"grs":          "gram",
	"grams":        "gram",
	"gramo":        "gram",
	"gramos":       "gram",
	"kg":           "kilogram",
	"kgs":          "kilogram",
	"kilo":         "kilogram",
	"kilos":        "kilogram",
	"kilogramo":    "kilogram",
	"kilogramos":   "kilogram",
	"kilograms":    "kilogram",
	"mg":           "milligram",
	"miligramo":    "milligram",
	"miligramos":   "milligram",
	"l":            "liter",
	"lt":           "liter",
	"lts":          "liter",
	"litre":        "liter",
	"liters":       "liter",
	"litro":        "liter",
	"litros":       "liter",
	"ml":           "milliliter",
	"millilitre":   "milliliter",
	"milliliters":  "milliliter",
	"mililitro":    "milliliter",
	"mililitros":   "milliliter",
	"oz":           "ounce",
	"onza":         "ounce",
	"onzas":        "ounce",
	"lb":           "pound",
	"lbs":          "pound",
	"libra":        "pound",
	"libras":       "pound",
}

// DefaultUnits tabla base. Las unidades de volumen se expresan en gramos equivalentes de agua.
func DefaultUnits() []entity.Unit {
	return []entity.Unit{
		{Name: "gram", Factor: decimal.NewFromInt(1)},
		{Name: "kilogram", Factor: decimal.NewFromInt(1000)},
		{Name: "milligram", Factor: decimal.RequireFromString("0.001")},
		{Name: "liter", Factor: decimal.NewFromInt(1000)},
		{Name: "milliliter", Factor: decimal.NewFromInt(1)},
		{Name: "ounce", Factor: decimal.RequireFromString("28.3495")},
		{Name: "pound", Factor: decimal.RequireFromString("453.592")},
	}
}

// NormalizeUnitKey recorta espacios, normaliza a NFC y pliega mayúsculas/minúsculas.
func NormalizeUnitKey(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	return cases.Fold().String(s)
}

// ResolveUnit aplica la tabla de alias sobre la clave normalizada.
func ResolveUnit(s string) string {
	k := NormalizeUnitKey(s)
	if alias, ok := unitAliases[k]; ok {
		return alias
	}
	return k
}

// UnitTable snapshot inmutable de factores (clave normalizada → factor a gramos).
// Un cálculo de costeo completo trabaja siempre sobre el mismo snapshot.
type UnitTable map[string]decimal.Decimal

// NewUnitTable construye un snapshot a partir de filas de unidades.
func NewUnitTable(units []entity.Unit) UnitTable {
	t := make(UnitTable, len(units))
	for _, u := range units {
		t[NormalizeUnitKey(u.Name)] = u.Factor
	}
	return t
}

// Lookup resuelve alias y devuelve el factor registrado; ok=false si la unidad no existe.
func (t UnitTable) Lookup(unitKey string) (decimal.Decimal, bool) {
	if f, ok := t[ResolveUnit(unitKey)]; ok {
		return f, true
	}
	// Unidades registradas con un nombre que coincide con un alias (ej. "g" propia).
	if f, ok := t[NormalizeUnitKey(unitKey)]; ok {
		return f, true
	}
	return decimal.Zero, false
}

// GetConversion devuelve el factor o 1 si la unidad no está registrada.
func (t UnitTable) GetConversion(unitKey string) decimal.Decimal {
	if f, ok := t.Lookup(unitKey); ok {
		return f
	}
	return one
}

// ConvertToBaseUnits convierte amount a la unidad base. Si la unidad no se conoce
// devuelve amount sin cambios y ok=false.
func (t UnitTable) ConvertToBaseUnits(amount decimal.Decimal, unit string) (decimal.Decimal, bool) {
	f, ok := t.Lookup(unit)
	if !ok {
		return amount, false
	}
	return amount.Mul(f), true
}

// UnitRegistry tabla de conversión compartida por todo el proceso.
// Se escribe solo vía RegisterUnit/DeleteUnit/Replace; los cálculos leen Snapshot().
type UnitRegistry struct {
	mu    sync.RWMutex
	units map[string]entity.Unit
}

// NewUnitRegistry crea el registro con las unidades iniciales (normalmente cargadas de la BD).
func NewUnitRegistry(units []entity.Unit) *UnitRegistry {
	r := &UnitRegistry{}
	r.Replace(units)
	return r
}

// Replace reemplaza todo el contenido (recarga desde persistencia).
func (r *UnitRegistry) Replace(units []entity.Unit) {
	m := make(map[string]entity.Unit, len(units))
	for _, u := range units {
		u.Name = strings.TrimSpace(u.Name)
		m[NormalizeUnitKey(u.Name)] = u
	}
	r.mu.Lock()
	r.units = m
	r.mu.Unlock()
}

// GetConversion factor de la unidad o 1 como respaldo.
func (r *UnitRegistry) GetConversion(unitKey string) decimal.Decimal {
	f, ok := r.Lookup(unitKey)
	if !ok {
		return one
	}
	return f
}

// Lookup factor de la unidad con indicador de existencia.
func (r *UnitRegistry) Lookup(unitKey string) (decimal.Decimal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.units[ResolveUnit(unitKey)]; ok {
		return u.Factor, true
	}
	if u, ok := r.units[NormalizeUnitKey(unitKey)]; ok {
		return u.Factor, true
	}
	return decimal.Zero, false
}

// RegisterUnit agrega una unidad nueva. Los nombres se comparan sin distinguir
// mayúsculas y sin espacios extremos; una unidad existente no se sobrescribe.
// Un alias cuya unidad canónica está registrada cuenta como existente ("g" con gram),
// porque Lookup lo resolvería a la canónica y el factor nuevo nunca se leería.
func (r *UnitRegistry) RegisterUnit(name string, factor decimal.Decimal) (entity.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" || !factor.IsPositive() {
		return entity.Unit{}, domain.ErrInvalidInput
	}
	key := NormalizeUnitKey(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.units[key]; exists {
		return entity.Unit{}, domain.ErrUnitAlreadyExists
	}
	if _, exists := r.units[ResolveUnit(name)]; exists {
		return entity.Unit{}, domain.ErrUnitAlreadyExists
	}
	u := entity.Unit{Name: name, Factor: factor, CreatedAt: time.Now()}
	r.units[key] = u
	return u, nil
}

// DeleteUnit elimina la unidad sin verificar si hay productos o ingredientes que la usan.
// Devuelve false si no existía.
func (r *UnitRegistry) DeleteUnit(name string) bool {
	_, ok := r.Take(name)
	return ok
}

// Take elimina la unidad registrada exactamente con ese nombre (sin resolver alias)
// y la devuelve tal como estaba.
func (r *UnitRegistry) Take(name string) (entity.Unit, bool) {
	key := NormalizeUnitKey(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.units[key]
	if !ok {
		return entity.Unit{}, false
	}
	delete(r.units, key)
	return u, true
}

// Restore vuelve a poner una unidad quitada con Take, sin validar duplicados.
func (r *UnitRegistry) Restore(u entity.Unit) {
	r.mu.Lock()
	r.units[NormalizeUnitKey(u.Name)] = u
	r.mu.Unlock()
}

// Units lista las unidades ordenadas por nombre.
func (r *UnitRegistry) Units() []entity.Unit {
	r.mu.RLock()
	list := make([]entity.Unit, 0, len(r.units))
	for _, u := range r.units {
		list = append(list, u)
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Snapshot copia la tabla actual para un cálculo de nivel superior.
func (r *UnitRegistry) Snapshot() UnitTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := make(UnitTable, len(r.units))
	for k, u := range r.units {
		t[k] = u.Factor
	}
	return t
}
