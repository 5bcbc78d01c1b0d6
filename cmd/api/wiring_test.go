package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	authjwt "pet-notes/internal/adapters/auth/jwt"
	"pet-notes/internal/domain/pets"
	"pet-notes/internal/platform/config"
	"pet-notes/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewRepos_SQLite(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := config.Config{Storage: config.Storage{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "app.db")}}

	r, err := newRepos(lc, cfg, logger.NewNop())
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, r.Pets.Create(context.Background(), pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Milo", Species: "Dog", CreatedAt: now, UpdatedAt: now}))
	got, err := r.Pets.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	lc.RequireStart().RequireStop()
}

func TestNewRepos_UnknownDriver(t *testing.T) {
	_, err := newRepos(fxtest.NewLifecycle(t), config.Config{Storage: config.Storage{Driver: "mongo"}}, logger.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewVerifier_ByMode(t *testing.T) {
	v, err := newVerifier(config.Config{Auth: config.Auth{Mode: config.AuthModeDev}}, logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = newVerifier(config.Config{Auth: config.Auth{Mode: config.AuthModeJWT, JWTSecret: "s"}}, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &authjwt.Verifier{}, v)

	_, err = newVerifier(config.Config{Auth: config.Auth{Mode: config.AuthModeRemote}}, logger.NewNop())
	assert.Error(t, err)
}
