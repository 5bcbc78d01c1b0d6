package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-notes/internal/platform/validation"
)

const (
	PetsPath = "/pets"

	AlertNotAuthorized = "You are not authorized to perform this action."
)

// Flash es el equivalente JSON de notice/alert + redirect.
type Flash struct {
	Error      string `json:"error,omitempty"`
	Notice     string `json:"notice,omitempty"`
	Alert      string `json:"alert,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type ValidationResponse struct {
	Error    string              `json:"error"`
	Fields   map[string][]string `json:"fields"`
	Messages []string            `json:"messages"`
	Alert    string              `json:"alert,omitempty"`
	Current  any                 `json:"current,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Flash{Error: msg})
}

// Redirect responde 302 con Location y el flash en el body
// (los clientes que no siguen redirects igual ven el alert).
func Redirect(w http.ResponseWriter, location string, f Flash) {
	f.RedirectTo = location
	w.Header().Set("Location", location)
	WriteJSON(w, http.StatusFound, f)
}

// NotAuthorized aborta hacia el listado de mascotas con alert.
func NotAuthorized(w http.ResponseWriter) {
	Redirect(w, PetsPath, Flash{Alert: AlertNotAuthorized})
}

// ValidationFailed responde 422 si err es *validation.Error. Devuelve false si no lo es,
// para que el caller siga con su manejo de errores.
func ValidationFailed(w http.ResponseWriter, err error, alert string, current any) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	WriteJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
		Error:    "validation failed",
		Fields:   verr.Fields,
		Messages: verr.FullMessages(),
		Alert:    alert,
		Current:  current,
	})
	return true
}
