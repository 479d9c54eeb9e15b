package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asif/userstore/internal/handler"
	"github.com/asif/userstore/internal/repository/sqlite"
	"github.com/asif/userstore/internal/service"
)

// newUserHandler builds the full stack over an in-memory store, so these
// tests exercise the real status-code mapping end to end.
func newUserHandler(t *testing.T) *handler.UserHandler {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return handler.NewUserHandler(service.NewUserService(db, logger), logger)
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func register(t *testing.T, h *handler.UserHandler, username, email, password string) map[string]any {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q}`, username, email, password)
	rr := postJSON(t, h.HandleRegister, "/register", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	var res map[string]map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	require.Contains(t, res, "newUser")
	return res["newUser"]
}

func TestRegisterRoute(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		h := newUserHandler(t)

		user := register(t, h, "bob", "bob@example.com", "hunter2")
		assert.NotEmpty(t, user["id"])
		assert.Equal(t, "bob", user["username"])
		assert.Equal(t, "bob@example.com", user["email"])
	})

	t.Run("all fields missing", func(t *testing.T) {
		h := newUserHandler(t)

		rr := postJSON(t, h.HandleRegister, "/register", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res, "error")
	})

	t.Run("exactly one field missing", func(t *testing.T) {
		h := newUserHandler(t)

		rr := postJSON(t, h.HandleRegister, "/register",
			`{"username":"bob","password":"hunter2"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		h := newUserHandler(t)

		rr := postJSON(t, h.HandleRegister, "/register", `{"username":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h := newUserHandler(t)
		register(t, h, "bob", "bob@example.com", "hunter2")

		rr := postJSON(t, h.HandleRegister, "/register",
			`{"username":"bobby","email":"bob@example.com","password":"other"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		// The store must still hold exactly one user.
		listRR := httptest.NewRecorder()
		h.HandleList(listRR, httptest.NewRequest(http.MethodGet, "/users", nil))
		var res map[string]any
		assert.NoError(t, json.NewDecoder(listRR.Body).Decode(&res))
		assert.Equal(t, float64(1), res["total_user"])
	})
}

func TestLoginRoute(t *testing.T) {
	h := newUserHandler(t)
	register(t, h, "alice", "alice@example.com", "s3cret")

	t.Run("correct credentials", func(t *testing.T) {
		rr := postJSON(t, h.HandleLogin, "/login",
			`{"email":"alice@example.com","password":"s3cret"}`)
		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res, "user")
		assert.Equal(t, "alice", res["user"]["username"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := postJSON(t, h.HandleLogin, "/login",
			`{"email":"alice@example.com","password":"wrong"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		rr := postJSON(t, h.HandleLogin, "/login",
			`{"email":"nobody@example.com","password":"s3cret"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		rr := postJSON(t, h.HandleLogin, "/login", `{"email":"alice@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListUsersRoute(t *testing.T) {
	t.Run("empty store answers 404", func(t *testing.T) {
		h := newUserHandler(t)

		rr := httptest.NewRecorder()
		h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)

		var res map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res, "msg")
	})

	t.Run("populated store", func(t *testing.T) {
		h := newUserHandler(t)
		register(t, h, "bob", "bob@example.com", "hunter2")

		rr := httptest.NewRecorder()
		h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			TotalUser int              `json:"total_user"`
			AllUsers  []map[string]any `json:"allUsers"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, 1, res.TotalUser)
		assert.Len(t, res.AllUsers, 1)
	})
}

func TestGetUserRoute(t *testing.T) {
	h := newUserHandler(t)
	created := register(t, h, "carol", "carol@example.com", "pw")
	id := created["id"].(string)

	t.Run("round-trip by id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		h.HandleGetByID(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "carol", res["user"]["username"])
		assert.Equal(t, "carol@example.com", res["user"]["email"])
		assert.Equal(t, "pw", res["user"]["password"])
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/nonexistent", nil)
		req.SetPathValue("id", "nonexistent")
		rr := httptest.NewRecorder()
		h.HandleGetByID(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateUserRoute(t *testing.T) {
	t.Run("full update answers 201", func(t *testing.T) {
		h := newUserHandler(t)
		created := register(t, h, "dave", "dave@example.com", "old-pw")
		id := created["id"].(string)

		body := `{"username":"david","email":"david@example.com","password":"new-pw"}`
		req := httptest.NewRequest(http.MethodPut, "/users/"+id, bytes.NewBufferString(body))
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var res map[string]map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res, "updateUser")
		assert.Equal(t, "david", res["updateUser"]["username"])
		assert.Equal(t, "david@example.com", res["updateUser"]["email"])
		assert.Equal(t, "new-pw", res["updateUser"]["password"])
	})

	t.Run("partial field set answers 401", func(t *testing.T) {
		h := newUserHandler(t)
		created := register(t, h, "erin", "erin@example.com", "pw")
		id := created["id"].(string)

		body := `{"username":"erin-new","password":"pw"}`
		req := httptest.NewRequest(http.MethodPut, "/users/"+id, bytes.NewBufferString(body))
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		// The record must not be partially applied.
		getReq := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		getReq.SetPathValue("id", id)
		getRR := httptest.NewRecorder()
		h.HandleGetByID(getRR, getReq)

		var res map[string]map[string]any
		assert.NoError(t, json.NewDecoder(getRR.Body).Decode(&res))
		assert.Equal(t, "erin", res["user"]["username"])
	})

	t.Run("unknown id answers 404 without creating", func(t *testing.T) {
		h := newUserHandler(t)

		body := `{"username":"ghost","email":"ghost@example.com","password":"pw"}`
		req := httptest.NewRequest(http.MethodPut, "/users/nonexistent", bytes.NewBufferString(body))
		req.SetPathValue("id", "nonexistent")
		rr := httptest.NewRecorder()
		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		listRR := httptest.NewRecorder()
		h.HandleList(listRR, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.Equal(t, http.StatusNotFound, listRR.Code, "store must still be empty")
	})
}

func TestDeleteUserRoute(t *testing.T) {
	t.Run("existing id", func(t *testing.T) {
		h := newUserHandler(t)
		created := register(t, h, "frank", "frank@example.com", "pw")
		id := created["id"].(string)

		req := httptest.NewRequest(http.MethodDelete, "/users/"+id, nil)
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]any
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res, "msg")

		// Record is gone.
		getReq := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		getReq.SetPathValue("id", id)
		getRR := httptest.NewRecorder()
		h.HandleGetByID(getRR, getReq)
		assert.Equal(t, http.StatusNotFound, getRR.Code)
	})

	t.Run("unknown id leaves store unchanged", func(t *testing.T) {
		h := newUserHandler(t)
		register(t, h, "grace", "grace@example.com", "pw")

		req := httptest.NewRequest(http.MethodDelete, "/users/nonexistent", nil)
		req.SetPathValue("id", "nonexistent")
		rr := httptest.NewRecorder()
		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		listRR := httptest.NewRecorder()
		h.HandleList(listRR, httptest.NewRequest(http.MethodGet, "/users", nil))
		var res map[string]any
		assert.NoError(t, json.NewDecoder(listRR.Body).Decode(&res))
		assert.Equal(t, float64(1), res["total_user"])
	})
}
