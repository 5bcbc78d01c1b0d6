package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const MsgBlank = "can't be blank"

// Error agrupa los fallos de validación por campo.
// Los handlers lo detectan con errors.As y responden 422.
type Error struct {
	Fields map[string][]string
}

func New() *Error {
	return &Error{Fields: map[string][]string{}}
}

func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Required agrega MsgBlank si value está vacío o solo tiene espacios.
func (e *Error) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, MsgBlank)
	}
}

// Merge suma los fallos de other (p.ej. fechas mal formadas al decodificar).
func (e *Error) Merge(other *Error) {
	if other.Empty() {
		return
	}
	for field, msgs := range other.Fields {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
}

func (e *Error) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Err devuelve nil si no hubo fallos (para poder hacer `return v.Err()`).
func (e *Error) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// FullMessages arma mensajes tipo "Note date can't be blank",
// ordenados por campo para que la salida sea estable.
func (e *Error) FullMessages() []string {
	if e.Empty() {
		return nil
	}
	keys := lo.Keys(e.Fields)
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, msg := range e.Fields[k] {
			out = append(out, humanize(k)+" "+msg)
		}
	}
	return out
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.FullMessages(), ", "))
}

// humanize: "note_date" => "Note date"
func humanize(field string) string {
	s := strings.ReplaceAll(strings.TrimSpace(field), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
