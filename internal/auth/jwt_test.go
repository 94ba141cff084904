package auth

import (
	"context"
	"testing"
	"time"

	"github.com/noircloset/noir/internal/kv"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, "Cherie")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.Name != "Cherie" {
		t.Errorf("expected name 'Cherie', got %q", claims.Name)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", "Cherie")

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestTokenExpiry(t *testing.T) {
	// Just verify the expiry is set correctly.
	secret := "test"
	token, _ := GenerateToken(secret, "test")
	claims, _ := ValidateToken(secret, token)

	expiresAt := claims.ExpiresAt.Time
	expectedExpiry := time.Now().Add(TokenExpiry)

	// Should be within a few seconds.
	diff := expectedExpiry.Sub(expiresAt)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}

func TestSecretGeneratedAndPersisted(t *testing.T) {
	store := kv.NewTestStore(t)
	ctx := context.Background()

	secret1, err := Secret(ctx, store)
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call returns the same secret.
	secret2, err := Secret(ctx, store)
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestPasswordLifecycle(t *testing.T) {
	store := kv.NewTestStore(t)
	ctx := context.Background()

	has, err := HasPassword(ctx, store)
	if err != nil {
		t.Fatalf("HasPassword: %v", err)
	}
	if has {
		t.Fatal("expected no password on fresh store")
	}

	if err := VerifyPassword(ctx, store, "anything"); err == nil {
		t.Error("expected error verifying before a password is set")
	}

	if err := SetPassword(ctx, store, "pearls-and-lace"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if has, _ := HasPassword(ctx, store); !has {
		t.Error("expected password present after SetPassword")
	}
	if err := VerifyPassword(ctx, store, "pearls-and-lace"); err != nil {
		t.Errorf("expected correct password to verify, got %v", err)
	}
	if err := VerifyPassword(ctx, store, "wrong"); err == nil {
		t.Error("expected wrong password to fail")
	}
}
