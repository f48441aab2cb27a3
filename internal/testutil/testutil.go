package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
)

// TestSecret signs tokens made by StaffToken.
const TestSecret = "test-secret"

// TestUser is a library member fixture.
var TestUser = entity.User{
	ID:       1,
	Name:     "Ana",
	Document: "D1",
}

// TestBook is a book fixture.
var TestBook = entity.Book{
	ID:           1,
	Title:        "Dune",
	Author:       "F.Herbert",
	Year:         1965,
	Available:    true,
	WaitingQueue: []entity.User{},
}

// StaffToken returns a valid staff token signed with secret.
func StaffToken(secret string) string {
	token, _, _ := crypto.GenerateToken(secret, "librarian", crypto.RoleStaff, time.Hour)
	return token
}

// ExpiredStaffToken returns a staff token that expired an hour ago.
func ExpiredStaffToken(secret string) string {
	c := crypto.Claims{
		Sub:  "librarian",
		Role: crypto.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	return token
}

// NewRequest creates a new HTTP request for testing, JSON-encoding body when set.
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth creates a new HTTP request with a bearer token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordResponse is a decoded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded JSON response.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the envelope's data object, or nil.
func (r RecordResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// ErrorCode returns the envelope's error code, or "".
func (r RecordResponse) ErrorCode() string {
	errBody, _ := r.Body["error"].(map[string]interface{})
	code, _ := errBody["code"].(string)
	return code
}
