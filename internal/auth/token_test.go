package auth

import (
	"testing"

	"github.com/spec-kit/room-booking-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("user-1", "dev@jadeglobal.com", domain.UserRoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if exp.IsZero() {
		t.Error("expected non-zero expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "dev@jadeglobal.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != domain.UserRoleAdmin {
		t.Errorf("Role = %q, want ADMIN", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 60)
	token, _, err := tm.GenerateToken("user-1", "dev@jadeglobal.com", domain.UserRoleEmployee)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewTokenManager("secret-b", 60)
	if _, err := other.ParseToken(token); err == nil {
		t.Error("expected token signed with a different secret to fail")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not.a.jwt"); err == nil {
		t.Error("expected parse error")
	}
}
