package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-notes/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotAuthorized(t *testing.T) {
	rr := httptest.NewRecorder()
	NotAuthorized(rr)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, PetsPath, rr.Header().Get("Location"))

	var f Flash
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	assert.Equal(t, AlertNotAuthorized, f.Alert)
	assert.Equal(t, PetsPath, f.RedirectTo)
}

func TestValidationFailed(t *testing.T) {
	rr := httptest.NewRecorder()
	assert.False(t, ValidationFailed(rr, errors.New("boom"), "", nil))
	assert.False(t, ValidationFailed(rr, nil, "", nil))

	v := validation.New()
	v.Add("content", validation.MsgBlank)

	rr = httptest.NewRecorder()
	require.True(t, ValidationFailed(rr, v.Err(), "Failed to add note: Content can't be blank", map[string]string{"id": "p1"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var out ValidationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, []string{"Content can't be blank"}, out.Messages)
	assert.Equal(t, "Failed to add note: Content can't be blank", out.Alert)
	assert.NotNil(t, out.Current)
}
