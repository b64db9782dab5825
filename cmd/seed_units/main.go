// seed_units genera el script SQL que puebla la tabla global de unidades a partir de un
// listado "nombre;factor" (factor multiplicativo hacia gramos), una unidad por línea.
//
// Uso: go run ./cmd/seed_units [ruta/unidades.csv]
// Por defecto busca unidades.csv en el directorio actual. Acepta UTF-8 o ISO-8859-1
// (exportaciones de Excel). Las líneas vacías o que empiezan con # se ignoran.
// Escribe: internal/infrastructure/postgres/migrations/003_seed_units.sql
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Cocina-api/internal/domain/costing"
)

type unitRow struct {
	key    string
	name   string
	factor decimal.Decimal
}

func main() {
	csvPath := "unidades.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir listado: %v\n", err)
		os.Exit(1)
	}
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Decodificar ISO-8859-1: %v\n", err)
			os.Exit(1)
		}
	}

	rows, skipped, err := parseUnits(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer listado: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "003_seed_units.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Unidades de medida (factor hacia gramos)\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))
	if len(rows) > 0 {
		out.WriteString("INSERT INTO units (unit_key, name, factor) VALUES\n")
		for i, r := range rows {
			sep := ","
			if i == len(rows)-1 {
				sep = ""
			}
			fmt.Fprintf(out, "  ('%s', '%s', %s)%s\n", escapeSQL(r.key), escapeSQL(r.name), r.factor.String(), sep)
		}
		out.WriteString("ON CONFLICT (unit_key) DO UPDATE SET name = EXCLUDED.name, factor = EXCLUDED.factor;\n")
	}

	fmt.Printf("Generado %s: %d unidades, %d líneas descartadas\n", outPath, len(rows), skipped)
}

// parseUnits lee "nombre;factor". Claves repetidas (tras normalizar) se quedan con la última
// línea; un mismo INSERT ... ON CONFLICT no puede tocar dos veces la misma fila.
func parseUnits(raw []byte) ([]unitRow, int, error) {
	byKey := make(map[string]unitRow)
	skipped := 0
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) < 2 {
			skipped++
			continue
		}
		name := strings.TrimSpace(parts[0])
		// Excel en español exporta la coma decimal.
		factor, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", "."))
		key := costing.NormalizeUnitKey(name)
		if err != nil || key == "" || !factor.IsPositive() {
			skipped++
			continue
		}
		byKey[key] = unitRow{key: key, name: name, factor: factor}
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}

	rows := make([]unitRow, 0, len(byKey))
	for _, r := range byKey {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })
	return rows, skipped, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
