package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	router "github.com/artem13815/taskboard/api/http"
	"github.com/artem13815/taskboard/api/http/handlers"
	"github.com/artem13815/taskboard/pkg/health"
	"github.com/artem13815/taskboard/pkg/security/credentials"
	"github.com/artem13815/taskboard/pkg/tasks"
	"github.com/artem13815/taskboard/pkg/users"
)

// In-memory doubles for the repository ports. They mirror the owner-scoping
// behavior of the postgres implementations.

type fakeUserRepo struct {
	byEmail map[string]users.User
}

func (r *fakeUserRepo) Create(_ context.Context, u users.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return users.ErrDuplicateEmail
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

type fakeTaskRepo struct {
	byID map[uuid.UUID]tasks.Task
}

func (r *fakeTaskRepo) Create(_ context.Context, t tasks.Task) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]tasks.Task, error) {
	var res []tasks.Task
	for _, t := range r.byID {
		if t.OwnerID == ownerID {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *fakeTaskRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (tasks.Task, error) {
	t, ok := r.byID[id]
	if !ok || t.OwnerID != ownerID {
		return tasks.Task{}, tasks.ErrNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) UpdateForOwner(_ context.Context, t tasks.Task) error {
	cur, ok := r.byID[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return tasks.ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	t, ok := r.byID[id]
	if !ok || t.OwnerID != ownerID {
		return tasks.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type okChecker struct{}

func (okChecker) Name() string                { return "fake" }
func (okChecker) Check(context.Context) error { return nil }

// newTestApp wires the full HTTP surface over in-memory stores.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	codec := credentials.New(credentials.Config{
		Secret:     "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	directory := users.NewDirectory(&fakeUserRepo{byEmail: map[string]users.User{}}, codec)
	taskUC := tasks.NewService(&fakeTaskRepo{byID: map[uuid.UUID]tasks.Task{}})

	app := fiber.New()
	router.Register(app,
		handlers.NewAuthHandler(directory),
		handlers.NewHealthHandler(health.NewService(okChecker{})),
		handlers.NewTaskHandler(taskUC),
		credentials.RequireAuth(codec),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// registerAndLogin creates an account and returns its token and user id.
func registerAndLogin(t *testing.T, app *fiber.App, email, password string) (token, userID string) {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}
