package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chybatronik/goUserRegistry/internal/logging"
	"github.com/chybatronik/goUserRegistry/internal/service"
	"github.com/chybatronik/goUserRegistry/internal/store"
	"github.com/chybatronik/goUserRegistry/internal/validation"
	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerNow = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

func newTestUserHandler() *UserHandler {
	logger := logging.NewLogger(io.Discard, "error", "json", "goUserRegistry", "test")
	svc := service.NewUserService(store.NewUserStore(), service.WithClock(func() time.Time { return handlerNow }))
	return NewUserHandler(logger, svc)
}

func postUser(t *testing.T, h *UserHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func getUsers(t *testing.T, h *UserHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/users"+query, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, ok := body["message"].(string)
	require.True(t, ok, "response must carry a string message: %s", w.Body.String())
	return msg
}

func TestCreateUserSuccess(t *testing.T) {
	h := newTestUserHandler()

	w := postUser(t, h, `{"username":"valid_user_123","gender":"male","dob":"1995-10-25"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var resp CreateUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MsgUserCreated, resp.Message)
	assert.Equal(t, 1, resp.User.ID)
	assert.Equal(t, "valid_user_123", resp.User.Username)
	assert.Equal(t, "male", resp.User.Gender)
	assert.Equal(t, "1995-10-25", resp.User.DOB)
}

func TestCreateUserPreservesGenderCasing(t *testing.T) {
	h := newTestUserHandler()

	w := postUser(t, h, `{"username":"bob","gender":"FeMale","dob":"2000-01-01"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp CreateUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FeMale", resp.User.Gender)
}

func TestCreateUserRejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "username with space",
			body:       `{"username":"invalid user","gender":"male","dob":"1995-10-25"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidUsername,
		},
		{
			name:       "missing username",
			body:       `{"gender":"male","dob":"1995-10-25"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidUsername,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidUsername,
		},
		{
			name:       "future dob",
			body:       `{"username":"future","gender":"male","dob":"2099-01-01"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidDateOfBirth,
		},
		{
			name:       "dob today",
			body:       `{"username":"today","gender":"male","dob":"2026-10-17"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidDateOfBirth,
		},
		{
			name:       "impossible calendar date",
			body:       `{"username":"feb","gender":"male","dob":"1995-02-30"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidDateOfBirth,
		},
		{
			name:       "unknown gender",
			body:       `{"username":"g","gender":"unknown","dob":"1995-10-25"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidGender,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidJSON,
		},
		{
			name:       "wrong field type",
			body:       `{"username":42,"gender":"male","dob":"1995-10-25"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    pkgerrors.MsgInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestUserHandler()
			w := postUser(t, h, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, w))
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	h := newTestUserHandler()

	first := postUser(t, h, `{"username":"alice_1","gender":"female","dob":"1990-05-20"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postUser(t, h, `{"username":"alice_1","gender":"female","dob":"1990-05-20"}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "Username đã tồn tại.", decodeMessage(t, second))

	// Uniqueness is checked before the other fields.
	third := postUser(t, h, `{"username":"alice_1","gender":"bogus","dob":"not-a-date"}`)
	assert.Equal(t, http.StatusConflict, third.Code)
}

func TestCreateUserPayloadTooLarge(t *testing.T) {
	h := newTestUserHandler()

	padding := strings.Repeat("a", int(validation.MaxRequestBodySize))
	body := `{"username":"big","gender":"male","dob":"1995-10-25","pad":"` + padding + `"}`

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, pkgerrors.MsgPayloadTooLarge, decodeMessage(t, w))
}

func TestGetUsersEmpty(t *testing.T) {
	h := newTestUserHandler()

	w := getUsers(t, h, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MsgUsersListed, resp.Message)
	assert.Empty(t, resp.Data.Users)
	assert.Equal(t, 0, resp.Data.Pagination.TotalUsers)
	assert.Equal(t, 1, resp.Data.Pagination.CurrentPage)
	assert.Equal(t, 0, resp.Data.Pagination.TotalPages)
	assert.Equal(t, 10, resp.Data.Pagination.Limit)

	// An empty page is still a JSON array.
	assert.Contains(t, w.Body.String(), `"users":[]`)
}

func TestGetUsersFilterSortAndPaginate(t *testing.T) {
	h := newTestUserHandler()

	for _, body := range []string{
		`{"username":"u1","gender":"male","dob":"2000-01-01"}`,
		`{"username":"u2","gender":"Female","dob":"1990-01-01"}`,
		`{"username":"u3","gender":"female","dob":"1980-01-01"}`,
		`{"username":"u4","gender":"other","dob":"1970-01-01"}`,
	} {
		require.Equal(t, http.StatusCreated, postUser(t, h, body).Code)
	}

	w := getUsers(t, h, "?gender=FEMALE&sortBy=dob&page=1&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Users, 1)
	assert.Equal(t, "u3", resp.Data.Users[0].Username)
	assert.Equal(t, 2, resp.Data.Pagination.TotalUsers)
	assert.Equal(t, 2, resp.Data.Pagination.TotalPages)
	assert.Equal(t, 1, resp.Data.Pagination.Limit)

	w = getUsers(t, h, "?page=2&limit=3")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Users, 1)
	assert.Equal(t, "u4", resp.Data.Users[0].Username)
	assert.Equal(t, 4, resp.Data.Pagination.TotalUsers)
	assert.Equal(t, 2, resp.Data.Pagination.CurrentPage)
}

func TestGetUsersRejections(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"zero page", "?page=0", pkgerrors.MsgInvalidPagination},
		{"negative limit", "?limit=-5", pkgerrors.MsgInvalidPagination},
		{"non numeric page", "?page=abc", pkgerrors.MsgInvalidPagination},
		{"bad pagination wins over bad gender", "?page=0&gender=xyz", pkgerrors.MsgInvalidPagination},
		{"unknown gender filter", "?gender=xyz", pkgerrors.MsgInvalidGenderFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestUserHandler()
			w := getUsers(t, h, tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, w))
		})
	}
}

func TestUsersMethodNotAllowed(t *testing.T) {
	h := newTestUserHandler()

	req := httptest.NewRequest(http.MethodDelete, "/users", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Allow"))
	assert.Equal(t, pkgerrors.MsgMethodNotAllowed, decodeMessage(t, w))
}
