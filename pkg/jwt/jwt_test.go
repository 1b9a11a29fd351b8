package jwt

import (
	"testing"
	"time"

	"clinic-scheduler/config"
)

func newTestService(expiry time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:      "test-secret",
		TokenExpiry: expiry,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(7 * 24 * time.Hour)

	token, err := svc.Generate("alice@example.com", "patient")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", claims.Subject)
	}
	if claims.Role != "patient" {
		t.Errorf("role = %q, want patient", claims.Role)
	}
}

func TestValidateCarriesExpiry(t *testing.T) {
	svc := newTestService(7 * 24 * time.Hour)

	token, err := svc.Generate("dr.smith@example.com", "doctor")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 7*24*time.Hour {
		t.Errorf("token lifetime = %v, want 168h", lifetime)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.Generate("alice@example.com", "patient")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewTokenService(config.JWTConfig{
		Secret:      "different-secret",
		TokenExpiry: time.Hour,
	})

	token, err := svc.Generate("alice@example.com", "patient")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	if _, err := svc.Validate("not.a.token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}

func TestExtractSubjectIgnoresExpiry(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.Generate("admin", "admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	subject, err := svc.ExtractSubject(token)
	if err != nil {
		t.Fatalf("ExtractSubject: %v", err)
	}
	if subject != "admin" {
		t.Errorf("subject = %q, want admin", subject)
	}
}
