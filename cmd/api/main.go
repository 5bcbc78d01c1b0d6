package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"pet-notes/internal/platform/config"
	"pet-notes/internal/platform/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// @title Pet Notes API
// @version 1.0
// @description Mascotas y notas por dueño. Solo el dueño ve o modifica sus mascotas.
// @BasePath /
func main() {
	fx.New(
		fx.Provide(func() (config.Config, error) { return config.Load(os.Args[1:]) }),
		fx.Provide(newLogger),
		fx.WithLogger(func(log logger.Logger) fxevent.Logger {
			if zl, ok := log.(*logger.ZapLogger); ok {
				return &fxevent.ZapLogger{Logger: zl.Zap().Named("fx")}
			}
			return fxevent.NopLogger
		}),
		fx.Provide(newRepos),
		fx.Provide(newVerifier),
		fx.Provide(newMetrics),
		fx.Provide(newHandler),
		fx.Provide(newHTTPServer),
		fx.Invoke(func(lc fx.Lifecycle, srv *http.Server, log logger.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						log.Info("starting server", map[string]any{"addr": srv.Addr})
						if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
							log.Error("server error", map[string]any{"err": err})
							os.Exit(1)
						}
					}()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Info("shutting down server", nil)
					return srv.Shutdown(ctx)
				},
			})
		}),
	).Run()
}
