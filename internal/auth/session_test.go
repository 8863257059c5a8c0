package auth

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestIssueAndParseSessionToken(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	user := &User{Username: "dtisc", Departamento: "DTISC"}
	token, expiresAt, err := IssueSessionToken(user, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiration, got %v", expiresAt)
	}

	session, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if session.Departamento != "DTISC" || session.Username != "dtisc" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestParseSessionTokenRejectsTampering(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	token, _, err := IssueSessionToken(&User{Username: "diac", Departamento: "DIAC"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := ParseSessionToken(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := ParseSessionToken(""); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestIssueSessionTokenRequiresSecret(t *testing.T) {
	t.Setenv(secretEnvVariable, "")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, _, err := IssueSessionToken(&User{Username: "dga", Departamento: "DGA"}, time.Hour); err == nil {
		t.Fatal("expected error when secret is unset")
	}
}

func TestSessionContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, ok := SessionFromContext(ctx); ok {
		t.Fatal("unexpected session in empty context")
	}

	ctx = ContextWithSession(ctx, Session{Departamento: "PRE", Username: "pre"})
	session, ok := SessionFromContext(ctx)
	if !ok {
		t.Fatal("expected session in context")
	}
	if session.Departamento != "PRE" || session.Username != "pre" {
		t.Fatalf("unexpected session: %+v", session)
	}
}
