package pets

import (
	"context"
	"strings"
)

// Authorize es el guard de ownership: solo el dueño puede ver o mutar la mascota
// (y sus notas). Función pura, sin I/O.
func Authorize(callerUserID string, p Pet) error {
	callerUserID = strings.TrimSpace(callerUserID)
	if callerUserID == "" || p.OwnerUserID != callerUserID {
		return ErrNotAuthorized
	}
	return nil
}

// GetOwned carga la mascota y aplica Authorize.
// ErrNotFound corta antes de comparar el dueño.
func (s *Service) GetOwned(ctx context.Context, callerUserID, petID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if err := Authorize(callerUserID, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
