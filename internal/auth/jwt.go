// Package auth handles the single-user login: a bcrypt password hash and an
// auto-generated JWT signing secret, both kept in the key-value store.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/noircloset/noir/internal/kv"
)

// Storage keys for credentials.
const (
	keySecret   = "noir_jwt_secret"
	keyPassword = "noir_password"
)

// Claims represents the JWT claims. The app is single-user, so the token
// only carries the owner's display name.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenExpiry is the default token lifetime.
const TokenExpiry = 7 * 24 * time.Hour

// GenerateToken creates a new JWT with a unique JTI.
func GenerateToken(secret, name string) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// Secret retrieves the JWT signing secret from the store, generating and
// persisting one on first run.
func Secret(ctx context.Context, store *kv.Store) (string, error) {
	secret, err := store.Get(ctx, keySecret)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return "", fmt.Errorf("loading jwt secret: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	secret = hex.EncodeToString(buf)

	if err := store.Set(ctx, keySecret, secret); err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}
	return secret, nil
}

// SetPassword bcrypt-hashes and stores the owner password.
func SetPassword(ctx context.Context, store *kv.Store, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := store.Set(ctx, keyPassword, string(hash)); err != nil {
		return fmt.Errorf("storing password: %w", err)
	}
	return nil
}

// HasPassword reports whether an owner password has been set.
func HasPassword(ctx context.Context, store *kv.Store) (bool, error) {
	_, err := store.Get(ctx, keyPassword)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading password: %w", err)
	}
	return true, nil
}

// VerifyPassword checks a login attempt against the stored hash.
func VerifyPassword(ctx context.Context, store *kv.Store, password string) error {
	hash, err := store.Get(ctx, keyPassword)
	if errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("no password set")
	}
	if err != nil {
		return fmt.Errorf("loading password: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}

// generateJTI creates a random token ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
