package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func adminUserJSON() string {
	return strings.Replace(userJSON, `"is_admin": false`, `"is_admin": true`, 1)
}

func TestRequireUser_StoresUserInContext(t *testing.T) {
	mock := &mockHTTPClient{response: &mockResponse{status: http.StatusOK, body: userJSON}}
	client := newTestClient(mock)

	var seenUsername string
	handler := RequireUser(client)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("user missing from context")
		}
		seenUsername = user.Username
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	if seenUsername != "ada" {
		t.Errorf("username = %q, want ada", seenUsername)
	}
}

func TestRequireUser_MissingHeader(t *testing.T) {
	client := newTestClient(&mockHTTPClient{})

	handler := RequireUser(client)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUser_NonBearerScheme(t *testing.T) {
	client := newTestClient(&mockHTTPClient{})

	handler := RequireUser(client)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with basic auth")
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireUser_RejectedToken(t *testing.T) {
	mock := &mockHTTPClient{response: &mockResponse{status: http.StatusUnauthorized, body: `{}`}}
	client := newTestClient(mock)

	handler := RequireUser(client)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAdmin_AllowsAdmins(t *testing.T) {
	mock := &mockHTTPClient{response: &mockResponse{status: http.StatusOK, body: adminUserJSON()}}
	client := newTestClient(mock)

	var called bool
	handler := RequireUser(client)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodDelete, "/tasks/abc", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("admin request should reach the handler")
	}
}

func TestRequireAdmin_RejectsNonAdmins(t *testing.T) {
	mock := &mockHTTPClient{response: &mockResponse{status: http.StatusOK, body: userJSON}}
	client := newTestClient(mock)

	handler := RequireUser(client)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("non-admin should not reach the handler")
	})))

	req := httptest.NewRequest(http.MethodDelete, "/tasks/abc", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireAdmin_WithoutRequireUser(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without an authenticated user")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
