package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teamhq/userauth/internal/domain"
	httpapi "github.com/teamhq/userauth/internal/http"
	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/internal/store"
	"github.com/teamhq/userauth/internal/store/drivers/sqlite"
	"github.com/teamhq/userauth/pkg/cryptox"
	"github.com/teamhq/userauth/pkg/idx"
	"github.com/teamhq/userauth/pkg/jwtx"
)

const (
	testIssuer = "userauth-test"
	testCost   = 4
)

var testSecret = []byte("router-test-secret-router-test-s")

type testServer struct {
	router *httpapi.Router
	store  store.Store
	signer jwtx.Signer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s", filepath.Join(t.TempDir(), "router_test.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, testIssuer)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(verifier, "test", 5*time.Second, st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    testIssuer,
		AccessTTL: time.Minute,
	}
	router.UserService = &service.UserService{Store: st, BcryptCost: testCost}
	router.ApplyRoutes()

	return &testServer{router: router, store: st, signer: signer}
}

func (ts *testServer) seedUser(t *testing.T, email, password, role string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(testCost, password)
	require.NoError(t, err)
	u := domain.User{
		ID:           idx.New().String(),
		FirstName:    "Seed",
		LastName:     "User",
		Role:         role,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, ts.store.Users().Create(context.Background(), u))
	return u
}

func (ts *testServer) tokenFor(t *testing.T, u domain.User) string {
	t.Helper()

	token, err := ts.signer.Sign(jwtx.NewAccessClaims(
		u.ID, u.Email, u.FirstName, u.LastName, u.Role,
		testIssuer, time.Minute, time.Now().UTC(),
	))
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "a@b.com", "right", "user")

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/login", "",
			map[string]string{"username": "a@b.com", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/login", "",
			map[string]string{"username": "nobody@b.com", "password": "right"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/login", "",
			map[string]string{"username": "a@b.com", "password": "right"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[map[string]string](t, rec)
		require.NotEmpty(t, body["token"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	u := ts.seedUser(t, "me@b.com", "pw", "support")

	t.Run("valid token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/user/me", ts.tokenFor(t, u), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[map[string]map[string]any](t, rec)
		require.Equal(t, "me@b.com", body["user"]["username"])
		require.Equal(t, u.ID, body["user"]["id"])
		require.NotContains(t, rec.Body.String(), u.PasswordHash)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/user/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotContains(t, rec.Body.String(), "me@b.com")
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/user/me", "not.a.token", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotContains(t, rec.Body.String(), "me@b.com")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := ts.signer.Sign(jwtx.NewAccessClaims(
			u.ID, u.Email, u.FirstName, u.LastName, u.Role,
			testIssuer, -time.Minute, time.Now().UTC(),
		))
		require.NoError(t, err)

		rec := ts.do(t, http.MethodGet, "/api/user/me", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotContains(t, rec.Body.String(), "me@b.com")
	})
}

func TestCreate(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@b.com", "adminpw", "admin")
	user := ts.seedUser(t, "user@b.com", "userpw", "user")

	newUser := map[string]any{"data": map[string]string{
		"firstName": "New",
		"lastName":  "Hire",
		"jobRole":   "user",
		"username":  "new@b.com",
	}}

	t.Run("admin creates user", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/create", ts.tokenFor(t, admin), newUser)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[map[string]any](t, rec)
		require.Equal(t, "success", body["status"])
		password, _ := body["password"].(string)
		require.Len(t, password, cryptox.GeneratedPasswordLength)

		// The freshly created user can log in with the generated password.
		rec = ts.do(t, http.MethodPost, "/api/user/login", "",
			map[string]string{"username": "new@b.com", "password": password})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/create", ts.tokenFor(t, admin), newUser)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/create", ts.tokenFor(t, user), newUser)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/create", "", newUser)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing email", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/create", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{"firstName": "No", "lastName": "Email"}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdate(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@b.com", "adminpw", "admin")
	alice := ts.seedUser(t, "alice@b.com", "alicepw", "user")
	bob := ts.seedUser(t, "bob@b.com", "bobpw", "user")

	t.Run("self update", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/update", ts.tokenFor(t, alice),
			map[string]any{"data": map[string]string{
				"id": alice.ID, "firstName": "Alice", "lastName": "Changed", "username": "alice@b.com",
			}})
		require.Equal(t, http.StatusOK, rec.Code)

		got, err := ts.store.Users().GetByID(context.Background(), alice.ID)
		require.NoError(t, err)
		require.Equal(t, "Changed", got.LastName)
	})

	t.Run("another user's account is forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/update", ts.tokenFor(t, alice),
			map[string]any{"data": map[string]string{
				"id": bob.ID, "firstName": "Hijacked", "lastName": "Bob", "username": "bob@b.com",
			}})
		require.Equal(t, http.StatusForbidden, rec.Code)

		got, err := ts.store.Users().GetByID(context.Background(), bob.ID)
		require.NoError(t, err)
		require.NotEqual(t, "Hijacked", got.FirstName)
	})

	t.Run("admin updates anyone", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/update", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{
				"id": bob.ID, "firstName": "Robert", "lastName": "B", "username": "bob@b.com",
			}})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/update", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{
				"id": idx.New().String(), "username": "ghost@b.com",
			}})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPasswordChange(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@b.com", "adminpw", "admin")
	alice := ts.seedUser(t, "alice@b.com", "alicepw", "user")
	_ = ts.seedUser(t, "bob@b.com", "bobpw", "user")

	t.Run("self change", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/change", ts.tokenFor(t, alice),
			map[string]any{"password": "newalicepw", "data": map[string]string{"username": "alice@b.com"}})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/user/login", "",
			map[string]string{"username": "alice@b.com", "password": "newalicepw"})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("another user's password is forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/change", ts.tokenFor(t, alice),
			map[string]any{"password": "pwned", "data": map[string]string{"username": "bob@b.com"}})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin changes anyone", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/change", ts.tokenFor(t, admin),
			map[string]any{"password": "newbobpw", "data": map[string]string{"username": "bob@b.com"}})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/change", ts.tokenFor(t, admin),
			map[string]any{"password": "x", "data": map[string]string{"username": "ghost@b.com"}})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPasswordReset(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@b.com", "adminpw", "admin")
	alice := ts.seedUser(t, "alice@b.com", "alicepw", "user")

	t.Run("admin resets", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/reset", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{"username": "alice@b.com"}})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[map[string]any](t, rec)
		password, _ := body["password"].(string)
		require.Len(t, password, cryptox.GeneratedPasswordLength)

		rec = ts.do(t, http.MethodPost, "/api/user/login", "",
			map[string]string{"username": "alice@b.com", "password": password})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/reset", ts.tokenFor(t, alice),
			map[string]any{"data": map[string]string{"username": "alice@b.com"}})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/password/reset", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{"username": "ghost@b.com"}})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@b.com", "adminpw", "admin")
	alice := ts.seedUser(t, "alice@b.com", "alicepw", "user")

	t.Run("non-admin forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/delete", ts.tokenFor(t, alice),
			map[string]any{"data": map[string]string{"username": "alice@b.com"}})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deletes", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/delete", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{"username": "alice@b.com"}})
		require.Equal(t, http.StatusOK, rec.Code)

		_, err := ts.store.Users().GetByEmail(context.Background(), "alice@b.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("already gone", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/user/delete", ts.tokenFor(t, admin),
			map[string]any{"data": map[string]string{"username": "alice@b.com"}})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRootForbidden(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodGet, "/not/a/route", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	require.Equal(t, "ok", body["status"])
}
