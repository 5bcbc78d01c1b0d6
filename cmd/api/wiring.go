package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	authjwt "pet-notes/internal/adapters/auth/jwt"
	"pet-notes/internal/adapters/auth/remote"
	"pet-notes/internal/adapters/storage/memory"
	"pet-notes/internal/adapters/storage/postgres"
	"pet-notes/internal/adapters/storage/sqlite"
	"pet-notes/internal/domain/notes"
	"pet-notes/internal/domain/pets"
	"pet-notes/internal/platform/config"
	"pet-notes/internal/platform/logger"
	"pet-notes/internal/platform/metrics"
	"pet-notes/internal/ports/auth"
	"pet-notes/internal/router"

	"go.uber.org/fx"
)

type repos struct {
	Pets  pets.Repository
	Notes notes.Repository
}

func newLogger(lc fx.Lifecycle, cfg config.Config) logger.Logger {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		lc.Append(fx.StopHook(func() { _ = zl.Sync() }))
	}
	return log
}

// newRepos elige el backend según storage.driver.
func newRepos(lc fx.Lifecycle, cfg config.Config, log logger.Logger) (repos, error) {
	ctx := context.Background()

	var closer io.Closer
	var out repos

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		s, err := postgres.NewStore(ctx, cfg.Storage.DSN)
		if err != nil {
			return repos{}, err
		}
		out, closer = repos{Pets: s.Pets(), Notes: s.Notes()}, s.DB()
	case config.DriverSQLite:
		s, err := sqlite.NewStore(ctx, cfg.Storage.DSN)
		if err != nil {
			return repos{}, err
		}
		out, closer = repos{Pets: s.Pets(), Notes: s.Notes()}, s.DB()
	case config.DriverMemory:
		s := memory.NewStore()
		out = repos{Pets: s.Pets(), Notes: s.Notes()}
	default:
		return repos{}, fmt.Errorf("%w: unknown storage.driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}

	log.Info("storage ready", map[string]any{"driver": cfg.Storage.Driver})
	if closer != nil {
		lc.Append(fx.StopHook(closer.Close))
	}
	return out, nil
}

// newVerifier devuelve nil en modo dev (AuthContext usa X-Debug-User-ID).
func newVerifier(cfg config.Config, log logger.Logger) (auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		return authjwt.NewVerifier(authjwt.Config{
			Secret: cfg.Auth.JWTSecret,
			Issuer: cfg.Auth.JWTIssuer,
		})
	case config.AuthModeRemote:
		return remote.NewVerifier(remote.Config{
			BaseURL: cfg.Auth.RemoteURL,
			APIKey:  cfg.Auth.RemoteAPIKey,
			Timeout: cfg.Auth.RemoteTimeout,
		})
	default:
		log.Warn("auth in dev mode: X-Debug-User-ID is trusted", nil)
		return nil, nil
	}
}

func newMetrics() *metrics.Metrics {
	return metrics.New("petnotes")
}

func newHandler(cfg config.Config, r repos, v auth.AuthVerifier, m *metrics.Metrics, log logger.Logger) http.Handler {
	return router.NewRouter(router.Options{
		AuthVerifier: v,
		Pets:         r.Pets,
		Notes:        r.Notes,
		Logger:       log,
		Metrics:      m,
		SignInPath:   cfg.Auth.SignInPath,
	})
}

func newHTTPServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
}
