package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-scheduler/internal/domain/entity"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), RoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	RequireRole(entity.RoleDoctor)(next).ServeHTTP(rec, requestWithRole(entity.RoleDoctor))

	if !called {
		t.Error("handler should have been called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not have been called")
	})

	rec := httptest.NewRecorder()
	RequireRole(entity.RoleAdmin)(next).ServeHTTP(rec, requestWithRole(entity.RolePatient))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not have been called")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RequireRole(entity.RoleAdmin)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	for _, role := range []string{entity.RoleDoctor, entity.RolePatient} {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		rec := httptest.NewRecorder()
		RequireDoctorOrPatient(next).ServeHTTP(rec, requestWithRole(role))

		if !called {
			t.Errorf("handler should have been called for role %q", role)
		}
	}
}
