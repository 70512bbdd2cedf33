package auth

import (
	"testing"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateAdminToken("ops", "secret")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := ValidateAdminToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateAdminToken: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "ops")
	}
	if claims.Issuer != "wordstash" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "wordstash")
	}
}

func TestValidateAdminToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateAdminToken("ops", "secret")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if _, err := ValidateAdminToken(token, "other-secret"); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateAdminToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ValidateAdminToken("not.a.token", "secret"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}
