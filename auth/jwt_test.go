package auth

import (
	"strings"
	"testing"

	"github.com/cvmate/backend/config"
	"github.com/cvmate/backend/models"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.Config{
		JWTSecret:      "test-secret-key",
		JWTExpiryHours: 1,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    "alice@example.com",
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  models.RoleUser,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService()

	token, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.UserID != "alice@example.com" {
		t.Errorf("UserID = %q, expected alice@example.com", claims.UserID)
	}
	if claims.Name != "Alice" {
		t.Errorf("Name = %q, expected Alice", claims.Name)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("Role = %q, expected user", claims.Role)
	}
	if claims.Issuer != "cvmate" {
		t.Errorf("Issuer = %q, expected cvmate", claims.Issuer)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "not a JWT", token: "definitely-not-a-jwt"},
		{name: "truncated JWT", token: "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VySWQi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); err == nil {
				t.Errorf("ValidateToken(%q) accepted an invalid token", tt.token)
			}
		})
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testJWTService().GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	other := NewJWTService(&config.Config{JWTSecret: "another-secret", JWTExpiryHours: 1})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateTokenRejectsTamperedPayload(t *testing.T) {
	svc := testJWTService()
	token, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, expected 3", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := svc.ValidateToken(tampered); err == nil {
		t.Error("ValidateToken() accepted a tampered token")
	}
}
