package sqlstore

import (
	"database/sql"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var timeLayouts = []string{
	sqliteTimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// dateValue lee columnas de fecha de calendario. pgx entrega time.Time,
// SQLite entrega el TEXT tal cual.
type dateValue struct {
	Time  time.Time
	Valid bool
}

func (v *dateValue) Scan(src any) error {
	*v = dateValue{}
	switch x := src.(type) {
	case nil:
		return nil
	case time.Time:
		y, m, d := x.Date()
		v.Time, v.Valid = time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		return nil
	case string:
		return v.parse(x)
	case []byte:
		return v.parse(string(x))
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into date", src)
	}
}

func (v *dateValue) parse(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("sqlstore: parse date %q: %w", s, err)
	}
	v.Time, v.Valid = t, true
	return nil
}

func (v dateValue) ptr() *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

// timeValue lee timestamps (created_at / updated_at).
type timeValue struct {
	Time time.Time
}

func (v *timeValue) Scan(src any) error {
	switch x := src.(type) {
	case time.Time:
		v.Time = x.UTC()
		return nil
	case string:
		return v.parse(x)
	case []byte:
		return v.parse(string(x))
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into timestamp", src)
	}
}

func (v *timeValue) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			v.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqlstore: parse timestamp %q", s)
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(dateLayout)
}

func boolArg(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func boolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	v := b.Bool
	return &v
}
