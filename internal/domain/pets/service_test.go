package pets

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-notes/internal/platform/validation"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoDown = errors.New("repo: down")

type testRepo struct {
	byID      map[string]Pet
	notesByID map[string]int // petID -> cantidad de notas
	failWrite bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}, notesByID: map[string]int{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if r.failWrite {
		return errRepoDown
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if r.failWrite {
		return errRepoDown
	}
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) (int, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, ErrNotFound
	}
	n := r.notesByID[id]
	delete(r.byID, id)
	delete(r.notesByID, id)
	return n, nil
}

func fixedService(repo Repository) *Service {
	svc := NewService(repo)
	now := time.Date(2025, 11, 11, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestAuthorize(t *testing.T) {
	p := Pet{ID: "pet-1", OwnerUserID: "owner-1"}

	assert.NoError(t, Authorize("owner-1", p))
	assert.ErrorIs(t, Authorize("other-1", p), ErrNotAuthorized)
	assert.ErrorIs(t, Authorize("", p), ErrNotAuthorized)
	assert.ErrorIs(t, Authorize("", Pet{}), ErrNotAuthorized)
}

func TestService_Create_AssignsOwnerAndTrims(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	bd := time.Date(2020, 1, 1, 15, 30, 0, 0, time.FixedZone("x", 3600))
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "  Fido ",
		Species:   "Dog",
		Breed:     "Golden Retriever",
		BirthDate: &bd,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "owner-1", p.OwnerUserID)
	assert.Equal(t, "Fido", p.Name)
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	assert.Len(t, repo.byID, 1)
}

func TestService_Create_BlankNameOrSpecies_NotPersisted(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	cases := []CreateInput{
		{Name: "", Species: ""},
		{Name: "Fido", Species: "  "},
		{Name: " ", Species: "Dog"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), "owner-1", in)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, repo.byID)

	_, err := svc.Create(context.Background(), "owner-1", CreateInput{})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{validation.MsgBlank}, verr.Fields["name"])
	assert.Equal(t, []string{validation.MsgBlank}, verr.Fields["species"])
}

func TestService_Create_RequiresOwner(t *testing.T) {
	svc := fixedService(newTestRepo())

	_, err := svc.Create(context.Background(), " ", CreateInput{Name: "Fido", Species: "Dog"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_PartialAndDates(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	bd := time.Date(2019, 5, 4, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog", BirthDate: &bd})
	require.NoError(t, err)

	later := time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }

	name := "New Name"
	neutered := true
	updated, err := svc.Update(context.Background(), p, UpdateInput{
		Name:      &name,
		Neutered:  BoolPatch{Present: true, Value: &neutered},
		BirthDate: DatePatch{Present: true, Value: nil},
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Dog", updated.Species)
	assert.Nil(t, updated.BirthDate)
	require.NotNil(t, updated.Neutered)
	assert.True(t, *updated.Neutered)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "owner-1", repo.byID[p.ID].OwnerUserID)
	assert.Equal(t, "New Name", repo.byID[p.ID].Name)
}

func TestService_Update_InvalidKeepsOriginal(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog"})
	require.NoError(t, err)

	empty := ""
	got, err := svc.Update(context.Background(), p, UpdateInput{Name: &empty})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Equal(t, p, got)
	assert.Equal(t, "Fido", repo.byID[p.ID].Name)
}

func TestService_Update_RepoFailureReturnsOriginal(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog"})
	require.NoError(t, err)

	repo.failWrite = true
	name := "Rex"
	got, err := svc.Update(context.Background(), p, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, errRepoDown)
	assert.Equal(t, "Fido", got.Name)
}

func TestService_GetOwned(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog"})
	require.NoError(t, err)

	got, err := svc.GetOwned(context.Background(), "owner-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetOwned(context.Background(), "other-1", p.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// NotFound gana sobre NotAuthorized
	_, err = svc.GetOwned(context.Background(), "other-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOwned(context.Background(), "owner-1", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_ReportsCascadedNotes(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog"})
	require.NoError(t, err)
	repo.notesByID[p.ID] = 3

	n, err := svc.Delete(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, repo.byID)

	_, err = svc.Delete(context.Background(), p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Create_ReportsDecodeAndModelFailuresTogether(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	decoded := validation.New()
	decoded.Add("birth_date", "must be YYYY-MM-DD")

	_, err := svc.Create(context.Background(), "owner-1", CreateInput{Invalid: decoded})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"birth_date", "name", "species"}, sortedKeys(verr.Fields))
	assert.Empty(t, repo.byID)

	// name/species válidos pero fecha mal formada: tampoco se persiste
	_, err = svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog", Invalid: decoded})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"birth_date"}, sortedKeys(verr.Fields))
	assert.Empty(t, repo.byID)
}

func TestService_Update_ReportsDecodeFailuresAndKeepsOriginal(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog"})
	require.NoError(t, err)

	decoded := validation.New()
	decoded.Add("adoption_date", "must be YYYY-MM-DD or null")
	empty := ""
	got, err := svc.Update(context.Background(), p, UpdateInput{Species: &empty, Invalid: decoded})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"adoption_date", "species"}, sortedKeys(verr.Fields))
	assert.Equal(t, p, got)
	assert.Equal(t, "Dog", repo.byID[p.ID].Species)
}

func TestService_Update_NeuteredNullClears(t *testing.T) {
	repo := newTestRepo()
	svc := fixedService(repo)

	yes := true
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Fido", Species: "Dog", Neutered: &yes})
	require.NoError(t, err)

	// ausente: no toca
	got, err := svc.Update(context.Background(), p, UpdateInput{})
	require.NoError(t, err)
	require.NotNil(t, got.Neutered)
	assert.True(t, *got.Neutered)

	// null: vuelve a desconocido
	got, err = svc.Update(context.Background(), got, UpdateInput{Neutered: BoolPatch{Present: true}})
	require.NoError(t, err)
	assert.Nil(t, got.Neutered)
	assert.Nil(t, repo.byID[p.ID].Neutered)
}

func sortedKeys(m map[string][]string) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
