package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/session"
)

func newAuthFixture(t *testing.T, handler http.HandlerFunc) (*AuthService, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := session.NewStore(session.NewMemoryStorage())
	gateway := api.NewClient(srv.URL,
		api.WithTokenSource(sessions),
		api.WithUnauthorizedHook(sessions.Clear),
	)
	return NewAuthService(gateway, sessions, nil), sessions
}

func TestLogin(t *testing.T) {
	t.Run("stores credentials on success", func(t *testing.T) {
		svc, sessions := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ana@softpan.test", req.Email)

			_ = json.NewEncoder(w).Encode(AuthResponse{
				Token:     "tok-1",
				Email:     req.Email,
				FirstName: "Ana",
				LastName:  "Moreno",
				Roles:     []string{RoleAdmin},
			})
		})

		creds, err := svc.Login(context.Background(), LoginRequest{Email: "ana@softpan.test", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok-1", creds.Token)
		assert.True(t, sessions.IsAuthenticated())
		assert.True(t, sessions.HasRole(RoleAdmin))
	})

	t.Run("rejects malformed input before any network call", func(t *testing.T) {
		svc, sessions := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := svc.Login(context.Background(), LoginRequest{Email: "nope", Password: "x"})
		require.Error(t, err)
		assert.False(t, sessions.IsAuthenticated())
	})

	t.Run("backend rejection leaves no session", func(t *testing.T) {
		svc, sessions := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
		})

		_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@softpan.test", Password: "wrongpw"})
		require.Error(t, err)
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "Credenciales inválidas", apiErr.Message)
		assert.False(t, sessions.IsAuthenticated())
	})
}

func TestRegister(t *testing.T) {
	svc, sessions := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "tok-2", Email: "new@softpan.test", Roles: []string{RoleSeller}})
	})

	creds, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "new@softpan.test",
		Password:  "secret1",
		FirstName: "Eva",
		LastName:  "Lopez",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", creds.Token)
	assert.True(t, sessions.HasRole(RoleSeller))
}

func TestLogout(t *testing.T) {
	svc, sessions := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "tok-3", Email: "a@b.c"})
	})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@softpan.test", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, sessions.IsAuthenticated())

	svc.Logout()
	assert.False(t, sessions.IsAuthenticated())
}
