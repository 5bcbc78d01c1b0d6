package pets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-notes/internal/middleware"
	"pet-notes/internal/platform/httpx"
	"pet-notes/internal/platform/logger"
	"pet-notes/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

const (
	NoticeCreated = "Pet was successfully created."
	NoticeUpdated = "Pet was successfully updated."
	NoticeDeleted = "Pet was successfully deleted."
)

// NoteSummary es la vista de una nota dentro del perfil de la mascota.
type NoteSummary struct {
	ID        string
	Content   string
	NoteDate  time.Time
	CreatedAt time.Time
}

// NoteLister evita importar el paquete notes (rompe ciclos pets <-> notes).
// Debe devolver las notas ya ordenadas (note_date desc).
type NoteLister interface {
	SummariesForPet(ctx context.Context, petID string) ([]NoteSummary, error)
}

func RegisterRoutes(r chi.Router, svc *Service, notes NoteLister, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/new", newPetHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc, notes, log))
		pr.Get("/{petID}/edit", editPetHandler(svc, log))
		pr.Patch("/{petID}", updatePetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

// petRequest sirve para create. Fechas en YYYY-MM-DD.
type petRequest struct {
	Name            string `json:"name"`
	Species         string `json:"species"`
	Breed           string `json:"breed"`
	Sex             string `json:"sex"`
	ColorMarkings   string `json:"color_markings"`
	MicrochipNumber string `json:"microchip_number"`
	Neutered        *bool  `json:"neutered"`
	BirthDate       string `json:"birth_date"`
	AdoptionDate    string `json:"adoption_date"`
}

// updatePetRequest: punteros para PATCH real, nil = no tocar.
// Fechas y neutered se leen aparte para distinguir null de ausente.
type updatePetRequest struct {
	Name            *string `json:"name"`
	Species         *string `json:"species"`
	Breed           *string `json:"breed"`
	Sex             *string `json:"sex"`
	ColorMarkings   *string `json:"color_markings"`
	MicrochipNumber *string `json:"microchip_number"`
}

type petResponse struct {
	ID              string     `json:"id"`
	OwnerUserID     string     `json:"owner_user_id"`
	Name            string     `json:"name"`
	Species         string     `json:"species"`
	Breed           string     `json:"breed"`
	Sex             string     `json:"sex"`
	ColorMarkings   string     `json:"color_markings"`
	MicrochipNumber string     `json:"microchip_number"`
	Neutered        *bool      `json:"neutered,omitempty"`
	BirthDate       *string    `json:"birth_date,omitempty"`
	AdoptionDate    *string    `json:"adoption_date,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	Notice string `json:"notice,omitempty"`
}

type noteSummaryResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	NoteDate  string    `json:"note_date"`
	CreatedAt time.Time `json:"created_at"`
}

type petDetailResponse struct {
	petResponse
	Notes []noteSummaryResponse `json:"notes"`
}

type deletePetResponse struct {
	Notice       string `json:"notice"`
	RedirectTo   string `json:"redirect_to"`
	NotesDeleted int    `json:"notes_deleted"`
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Devuelve solo las mascotas del caller, nunca las de otros usuarios.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petResponse
// @Failure 302 {object} httpx.Flash "sin identidad => sign-in"
// @Failure 500 {object} httpx.Flash "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())

		items, err := svc.ListByOwner(r.Context(), uid)
		if err != nil {
			log.Error("list pets failed", map[string]any{"user_id": uid, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, lo.Map(items, func(p Pet, _ int) petResponse {
			return toPetResponse(p)
		}))
	}
}

// newPetHandler godoc
// @Summary Formulario de nueva mascota
// @Description Devuelve una mascota en blanco del caller. No persiste nada.
// @Tags pets
// @Produce json
// @Success 200 {object} petResponse
// @Router /pets/new [get]
func newPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(svc.New(uid)))
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota cuyo dueño es el caller. name y species son obligatorios.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Datos de la mascota; fechas en YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpx.Flash "invalid json"
// @Failure 422 {object} httpx.ValidationResponse
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := middleware.UserID(r.Context())

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v := validation.New()
		bd := parseDateField(v, "birth_date", req.BirthDate)
		ad := parseDateField(v, "adoption_date", req.AdoptionDate)

		p, err := svc.Create(r.Context(), uid, CreateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Sex:             req.Sex,
			ColorMarkings:   req.ColorMarkings,
			MicrochipNumber: req.MicrochipNumber,
			Neutered:        req.Neutered,
			BirthDate:       bd,
			AdoptionDate:    ad,
			Invalid:         v,
		})
		if err != nil {
			if httpx.ValidationFailed(w, err, "", nil) {
				return
			}
			log.Error("create pet failed", map[string]any{"user_id": uid, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info("pet created", map[string]any{"user_id": uid, "pet_id": p.ID})

		resp := toPetResponse(p)
		resp.Notice = NoticeCreated
		w.Header().Set("Location", httpx.PetsPath+"/"+p.ID)
		httpx.WriteJSON(w, http.StatusCreated, resp)
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Description Devuelve la mascota con sus notas (note_date desc). Solo el dueño.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petDetailResponse
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, notes NoteLister, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := LoadOwned(w, r, svc, log)
		if !ok {
			return
		}

		items, err := notes.SummariesForPet(r.Context(), p.ID)
		if err != nil {
			log.Error("list notes failed", map[string]any{"pet_id": p.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, petDetailResponse{
			petResponse: toPetResponse(p),
			Notes: lo.Map(items, func(n NoteSummary, _ int) noteSummaryResponse {
				return noteSummaryResponse{
					ID:        n.ID,
					Content:   n.Content,
					NoteDate:  n.NoteDate.Format(DateLayout),
					CreatedAt: n.CreatedAt,
				}
			}),
		})
	}
}

// editPetHandler godoc
// @Summary Formulario de edición
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found"
// @Router /pets/{petID}/edit [get]
func editPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := LoadOwned(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH)
// @Description Cambios parciales. Para limpiar una fecha enviar null. Si la validación falla se devuelve el estado original en `current`.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body petRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found"
// @Failure 422 {object} httpx.ValidationResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := LoadOwned(w, r, svc, log)
		if !ok {
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		// Para soportar "birth_date": null hay que detectar presencia del campo,
		// así que primero decodificamos a map y después al struct.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		var req updatePetRequest
		if err := json.Unmarshal(body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v := validation.New()
		bd := parseDatePatch(v, raw, "birth_date")
		ad := parseDatePatch(v, raw, "adoption_date")
		neutered := parseBoolPatch(v, raw, "neutered")

		updated, err := svc.Update(r.Context(), current, UpdateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Sex:             req.Sex,
			ColorMarkings:   req.ColorMarkings,
			MicrochipNumber: req.MicrochipNumber,
			Neutered:        neutered,
			BirthDate:       bd,
			AdoptionDate:    ad,
			Invalid:         v,
		})
		if err != nil {
			if httpx.ValidationFailed(w, err, "", toPetResponse(updated)) {
				return
			}
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "pet not found")
				return
			}
			log.Error("update pet failed", map[string]any{"pet_id": current.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := toPetResponse(updated)
		resp.Notice = NoticeUpdated
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota y todas sus notas (atómico).
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} deletePetResponse
// @Failure 302 {object} httpx.Flash "no es el dueño => /pets con alert"
// @Failure 404 {object} httpx.Flash "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := LoadOwned(w, r, svc, log)
		if !ok {
			return
		}

		n, err := svc.Delete(r.Context(), p)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "pet not found")
				return
			}
			log.Error("delete pet failed", map[string]any{"pet_id": p.ID, "err": err})
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info("pet deleted", map[string]any{"pet_id": p.ID, "notes_deleted": n})

		httpx.WriteJSON(w, http.StatusOK, deletePetResponse{
			Notice:       NoticeDeleted,
			RedirectTo:   httpx.PetsPath,
			NotesDeleted: n,
		})
	}
}

// LoadOwned resuelve {petID} para el caller y escribe la respuesta de error si corresponde:
// 404 si no existe, redirect con alert si no es el dueño.
// Lo usan también los handlers de notas.
func LoadOwned(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Pet, bool) {
	uid, _ := middleware.UserID(r.Context())
	petID := chi.URLParam(r, "petID")

	p, err := svc.GetOwned(r.Context(), uid, petID)
	switch {
	case err == nil:
		return p, true
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "pet not found")
	case errors.Is(err, ErrNotAuthorized):
		log.Warn("pet access denied", map[string]any{"user_id": uid, "pet_id": petID})
		httpx.NotAuthorized(w)
	default:
		log.Error("load pet failed", map[string]any{"pet_id": petID, "err": err})
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
	return Pet{}, false
}

func parseDateField(v *validation.Error, field, s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		v.Add(field, "must be YYYY-MM-DD")
		return nil
	}
	return &t
}

func parseDatePatch(v *validation.Error, raw map[string]json.RawMessage, field string) DatePatch {
	msg, exists := raw[field]
	if !exists {
		return DatePatch{}
	}
	if string(msg) == "null" {
		return DatePatch{Present: true}
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		v.Add(field, "must be YYYY-MM-DD or null")
		return DatePatch{}
	}
	return DatePatch{Present: true, Value: parseDateField(v, field, s)}
}

func parseBoolPatch(v *validation.Error, raw map[string]json.RawMessage, field string) BoolPatch {
	msg, exists := raw[field]
	if !exists {
		return BoolPatch{}
	}
	if string(msg) == "null" {
		return BoolPatch{Present: true}
	}
	var b bool
	if err := json.Unmarshal(msg, &b); err != nil {
		v.Add(field, "must be true, false or null")
		return BoolPatch{}
	}
	return BoolPatch{Present: true, Value: &b}
}

func toPetResponse(p Pet) petResponse {
	resp := petResponse{
		ID:              p.ID,
		OwnerUserID:     p.OwnerUserID,
		Name:            p.Name,
		Species:         p.Species,
		Breed:           p.Breed,
		Sex:             p.Sex,
		ColorMarkings:   p.ColorMarkings,
		MicrochipNumber: p.MicrochipNumber,
		Neutered:        p.Neutered,
		BirthDate:       formatDate(p.BirthDate),
		AdoptionDate:    formatDate(p.AdoptionDate),
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = &p.CreatedAt
		resp.UpdatedAt = &p.UpdatedAt
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
