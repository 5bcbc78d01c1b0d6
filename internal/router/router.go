package router

import (
	"net/http"

	_ "pet-notes/internal/docs"

	"pet-notes/internal/adapters/storage/memory"
	"pet-notes/internal/domain/notes"
	"pet-notes/internal/domain/pets"
	"pet-notes/internal/middleware"
	"pet-notes/internal/platform/logger"
	"pet-notes/internal/platform/metrics"
	"pet-notes/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev, header X-Debug-User-ID)

	// Opcionales: si no vienen, se usa el store in-memory.
	Pets  pets.Repository
	Notes notes.Repository

	Logger  logger.Logger   // nil => nop
	Metrics *metrics.Metrics // nil => sin /metrics

	SignInPath string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	petRepo, noteRepo := opts.Pets, opts.Notes
	if petRepo == nil || noteRepo == nil {
		store := memory.NewStore()
		petRepo, noteRepo = store.Pets(), store.Notes()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	notesSvc := notes.NewService(noteRepo)

	// Todo lo de mascotas y notas exige identidad.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser(opts.SignInPath))

		pets.RegisterRoutes(pr, petsSvc, notesSvc, log)
		notes.RegisterRoutes(pr, notesSvc, petsSvc, log)
	})

	return r
}
