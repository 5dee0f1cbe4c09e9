package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
)

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "conflict",
			err:            pkgerrors.ErrDuplicateUsername,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"message":"Username đã tồn tại."}`,
		},
		{
			name:           "wrapped validation error",
			err:            fmt.Errorf("create user: %w", pkgerrors.ErrInvalidGender),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Giới tính không hợp lệ"}`,
		},
		{
			name:           "unknown error hides details",
			err:            stderrors.New("disk on fire"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Lỗi máy chủ nội bộ"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}

			body := strings.TrimSpace(w.Body.String())
			if body != tc.expectedBody {
				t.Errorf("Expected body %s, got %s", tc.expectedBody, body)
			}
		})
	}
}

func TestSecureResponseHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMessage(w, http.StatusTooManyRequests, "Too many requests")

	expectedHeaders := map[string]string{
		"Content-Type":           "application/json; charset=utf-8",
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}

	for header, expectedValue := range expectedHeaders {
		if actualValue := w.Header().Get(header); actualValue != expectedValue {
			t.Errorf("Expected header %s to be %s, got %s", header, expectedValue, actualValue)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteJSON(w, http.StatusCreated, map[string]int{"id": 1}); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if body["id"] != 1 {
		t.Errorf("Expected id 1, got %d", body["id"])
	}
}

func TestWriteMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMethodNotAllowed(w, "GET, POST")

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Expected Allow header 'GET, POST', got %q", allow)
	}
}
