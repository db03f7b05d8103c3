package auth

import (
	"testing"
	"time"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	issuer, verifier := NewJWT("test-secret")

	token, err := issuer.Issue("u-1", "ada@example.com", "organizer", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u-1" {
		t.Errorf("expected user u-1, got %q", claims.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("expected email in claims, got %q", claims.Email)
	}
	if claims.Role != "organizer" {
		t.Errorf("expected role in claims, got %q", claims.Role)
	}
}

func TestJWT_VerifyRejectsExpired(t *testing.T) {
	issuer, verifier := NewJWT("test-secret")

	token, err := issuer.Issue("u-1", "ada@example.com", "attendee", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWT_VerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewJWT("secret-a")
	_, verifier := NewJWT("secret-b")

	token, err := issuer.Issue("u-1", "ada@example.com", "attendee", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestJWT_VerifyRejectsGarbage(t *testing.T) {
	_, verifier := NewJWT("test-secret")
	if _, err := verifier.Verify("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
