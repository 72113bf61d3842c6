package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("doc-1", "a.rao@example.com", RoleDoctor, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	subject, role, err := ExtractClaimsFromToken(token)
	if err != nil {
		t.Fatalf("ExtractClaimsFromToken failed: %v", err)
	}
	if subject != "doc-1" {
		t.Errorf("expected subject doc-1, got %q", subject)
	}
	if role != RoleDoctor {
		t.Errorf("expected role %q, got %q", RoleDoctor, role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("pat-1", "p@example.com", RolePatient, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("pat-1", "p@example.com", RolePatient, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, _, err := ExtractClaimsFromToken(tampered); err == nil {
		t.Fatal("expected a tampered token to be rejected")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Error("hashing the same token twice should be stable")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Error("different tokens should not collide")
	}
	if len(HashToken("abc")) != 64 {
		t.Error("expected a hex-encoded SHA-256 digest")
	}
}
