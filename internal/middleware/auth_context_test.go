package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-notes/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
	got    string
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	s.got = token
	return s.claims, s.err
}

// whoami responde con el user id del contexto (o vacío).
func whoami(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserID(r.Context())
	_, _ = w.Write([]byte(uid))
}

func serve(h http.Handler, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAuthContext_DevHeader(t *testing.T) {
	h := AuthContext(nil)(http.HandlerFunc(whoami))

	assert.Equal(t, "user-1", serve(h, map[string]string{DebugUserHeader: " user-1 "}).Body.String())
	assert.Equal(t, "", serve(h, nil).Body.String())
}

func TestAuthContext_Bearer(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{UserID: "user-9"}}
	h := AuthContext(v)(http.HandlerFunc(whoami))

	assert.Equal(t, "user-9", serve(h, map[string]string{"Authorization": "Bearer tok"}).Body.String())
	assert.Equal(t, "tok", v.got)

	// con verifier, el header de debug no vale
	assert.Equal(t, "", serve(h, map[string]string{DebugUserHeader: "intruder"}).Body.String())

	v.err = errors.New("bad token")
	assert.Equal(t, "", serve(h, map[string]string{"Authorization": "Bearer tok"}).Body.String())
}

func TestRequireUser(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	h := AuthContext(nil)(RequireUser("")(next))

	rr := serve(h, nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/users/sign_in", rr.Header().Get("Location"))
	assert.Contains(t, rr.Body.String(), "unauthenticated")
	assert.False(t, called)

	rr = serve(h, map[string]string{DebugUserHeader: "user-1"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"Bearer":       "",
		"Basic abc":    "",
		"bearer abc":   "abc",
		"Bearer  abc ": "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, bearerToken(in), "input %q", in)
	}
}
