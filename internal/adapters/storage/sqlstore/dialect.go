package sqlstore

import (
	"strconv"
	"strings"
	"time"
)

// Dialect cubre las diferencias entre Postgres (pgx) y SQLite (modernc)
// que afectan a los repos: placeholders y cómo viajan los timestamps.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Rebind convierte los `?` de q en $1..$n para Postgres.
// Las queries de este paquete no tienen `?` literales.
func (d Dialect) Rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqliteTimeLayout tiene ancho fijo (nanosegundos con ceros) para que el
// orden del TEXT coincida con el orden temporal; RFC3339Nano recorta ceros.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// timeArg: Postgres guarda TIMESTAMPTZ; en SQLite va como TEXT UTC de ancho fijo.
func (d Dialect) timeArg(t time.Time) any {
	if d == SQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}
