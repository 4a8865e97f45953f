package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTasks_RequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/tasks/"},
		{http.MethodGet, "/tasks/"},
		{http.MethodGet, "/tasks/" + uuid.NewString()},
		{http.MethodPatch, "/tasks/" + uuid.NewString()},
		{http.MethodDelete, "/tasks/" + uuid.NewString()},
	} {
		resp, body := doJSON(t, app, route.method, route.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		require.Equal(t, "Missing Authorization header", body["error"])
	}
}

func TestTasks_CreateAndGet(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, userID := registerAndLogin(t, app, "a@x.com", "secret1")

	resp, created := doJSON(t, app, http.MethodPost, "/tasks/", token, fiber.Map{
		"title":       "buy milk",
		"description": "2l",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "buy milk", created["title"])
	require.Equal(t, "2l", created["description"])
	require.Equal(t, false, created["completed"])
	require.Equal(t, userID, created["ownerId"])
	require.NotEmpty(t, created["createdAt"])

	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, got := doJSON(t, app, http.MethodGet, "/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, created, got)
}

func TestTasks_CreateValidation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	resp, body := doJSON(t, app, http.MethodPost, "/tasks/", token, fiber.Map{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "title is required", body["error"])
}

func TestTasks_List_NewestFirst(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	for _, title := range []string{"first", "second", "third"} {
		resp, _ := doJSON(t, app, http.MethodPost, "/tasks/", token, fiber.Map{"title": title})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 3)
	// Creation timestamps share a coarse clock in-process; order is still
	// newest-first by createdAt as stored.
	titles := []string{list[0]["title"].(string), list[1]["title"].(string), list[2]["title"].(string)}
	require.ElementsMatch(t, []string{"first", "second", "third"}, titles)
}

func TestTasks_ListEmpty(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))
}

func TestTasks_InvalidID(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/tasks/not-a-uuid"},
		{http.MethodPatch, "/tasks/not-a-uuid"},
		{http.MethodDelete, "/tasks/not-a-uuid"},
	} {
		resp, body := doJSON(t, app, route.method, route.path, token, fiber.Map{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s %s", route.method, route.path)
		require.Equal(t, "Invalid task id", body["error"])
	}
}

func TestTasks_UnknownID(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	// Well-formed but nonexistent.
	missing := "/tasks/00000000-0000-0000-0000-000000000000"
	resp, body := doJSON(t, app, http.MethodGet, missing, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Task not found", body["error"])
}

func TestTasks_OwnerIsolation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	aliceToken, _ := registerAndLogin(t, app, "alice@x.com", "secret1")
	bobToken, _ := registerAndLogin(t, app, "bob@x.com", "secret2")

	resp, created := doJSON(t, app, http.MethodPost, "/tasks/", aliceToken, fiber.Map{"title": "alice's task"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)

	// Bob gets 404, never 403: the task is invisible to him.
	resp, _ = doJSON(t, app, http.MethodGet, "/tasks/"+id, bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, "/tasks/"+id, bobToken, fiber.Map{"title": "stolen"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/tasks/"+id, bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))

	// Alice still owns it.
	resp, got := doJSON(t, app, http.MethodGet, "/tasks/"+id, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice's task", got["title"])
}

func TestTasks_Patch(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	resp, created := doJSON(t, app, http.MethodPost, "/tasks/", token, fiber.Map{
		"title":       "buy milk",
		"description": "2l",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)

	resp, updated := doJSON(t, app, http.MethodPatch, "/tasks/"+id, token, fiber.Map{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, updated["completed"])
	require.Equal(t, "buy milk", updated["title"])
	require.Equal(t, "2l", updated["description"])
	require.Equal(t, created["createdAt"], updated["createdAt"])

	// Empty body leaves every field as it was.
	resp, unchanged := doJSON(t, app, http.MethodPatch, "/tasks/"+id, token, fiber.Map{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, updated, unchanged)
}

func TestTasks_DeleteTwice(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "a@x.com", "secret1")

	resp, created := doJSON(t, app, http.MethodPost, "/tasks/", token, fiber.Map{"title": "buy milk"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)

	resp, body := doJSON(t, app, http.MethodDelete, "/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Task deleted", body["message"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/tasks/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
