package notes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-notes/internal/domain/pets"
	"pet-notes/internal/platform/httpx"
	"pet-notes/internal/platform/logger"
	"pet-notes/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

const (
	NoticeCreated = "Note added successfully."
	NoticeDeleted = "Note deleted successfully."

	alertCreateFailedPrefix = "Failed to add note: "
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, log logger.Logger) {
	r.Route("/pets/{petID}/notes", func(nr chi.Router) {
		nr.Get("/", listNotesHandler(svc, petsSvc, log))
		nr.Post("/", createNoteHandler(svc, petsSvc, log))
		nr.Delete("/{noteID}", deleteNoteHandler(svc, petsSvc, log))
	})
}

// createNoteRequest es el cuerpo para agregar una nota.
type createNoteRequest struct {
	Content  string `json:"content"`
	NoteDate string `json:"note_date"` // YYYY-MM-DD
}

// noteResponse representa una nota devuelta por la API.
type noteResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Content   string    `json:"content"`
	NoteDate  string    `json:"note_date"`
	CreatedAt time.Time `json:"created_at"`

	Notice     string `json:"notice,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// listNotesHandler godoc
// @Summary Listar notas de una mascota
// @Description Notas ordenadas por note_date desc; empates, la más reciente primero. Solo el dueño de la mascota.
// @Tags notes
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} noteResponse
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found"
// @Router /pets/{petID}/notes [get]
func listNotesHandler(svc *Service, petsSvc *pets.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.LoadOwned(w, r, petsSvc, log)
		if !ok {
			return
		}

		items, err := svc.ListForPet(r.Context(), p)
		if err != nil {
			log.Error("list notes failed", map[string]any{"pet_id": p.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, lo.Map(items, func(n Note, _ int) noteResponse {
			return toNoteResponse(n)
		}))
	}
}

// createNoteHandler godoc
// @Summary Agregar nota
// @Description Agrega una nota a la mascota. content y note_date son obligatorios.
// @Tags notes
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createNoteRequest true "Nota; note_date en formato YYYY-MM-DD"
// @Success 201 {object} noteResponse
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found"
// @Failure 422 {object} httpx.ValidationResponse
// @Router /pets/{petID}/notes [post]
func createNoteHandler(svc *Service, petsSvc *pets.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := pets.LoadOwned(w, r, petsSvc, log)
		if !ok {
			return
		}

		var req createNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		n, err := svc.Create(r.Context(), p, CreateInput{
			Content:  req.Content,
			NoteDate: parseNoteDate(req.NoteDate),
		})
		if err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				alert := alertCreateFailedPrefix + strings.Join(verr.FullMessages(), ", ")
				httpx.ValidationFailed(w, err, alert, nil)
				return
			}
			log.Error("create note failed", map[string]any{"pet_id": p.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := toNoteResponse(n)
		resp.Notice = NoticeCreated
		resp.RedirectTo = httpx.PetsPath + "/" + p.ID
		httpx.WriteJSON(w, http.StatusCreated, resp)
	}
}

// deleteNoteHandler godoc
// @Summary Borrar nota
// @Description Borra una sola nota. Si la nota es de otra mascota responde 404.
// @Tags notes
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param noteID path string true "ID de la nota"
// @Success 200 {object} httpx.Flash
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found / note not found"
// @Router /pets/{petID}/notes/{noteID} [delete]
func deleteNoteHandler(svc *Service, petsSvc *pets.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Permisos primero (por la mascota), después la nota.
		p, ok := pets.LoadOwned(w, r, petsSvc, log)
		if !ok {
			return
		}

		n, err := svc.GetForPet(r.Context(), p, chi.URLParam(r, "noteID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "note not found")
				return
			}
			log.Error("load note failed", map[string]any{"pet_id": p.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := svc.Delete(r.Context(), n); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "note not found")
				return
			}
			log.Error("delete note failed", map[string]any{"note_id": n.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, httpx.Flash{
			Notice:     NoticeDeleted,
			RedirectTo: httpx.PetsPath + "/" + p.ID,
		})
	}
}

// parseNoteDate: una fecha inválida cuenta como ausente ("can't be blank").
func parseNoteDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(pets.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func toNoteResponse(n Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		PetID:     n.PetID,
		Content:   n.Content,
		NoteDate:  n.NoteDate.Format(pets.DateLayout),
		CreatedAt: n.CreatedAt,
	}
}
