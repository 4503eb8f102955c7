package services

import (
	"strings"
	"testing"

	"consulting-platform-server/config"
	"consulting-platform-server/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	config.Load()

	js := NewJWTService()
	user := &models.User{ID: 42, Role: models.RoleConsultant}

	token, expiresIn, err := js.generateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	if expiresIn <= 0 {
		t.Errorf("expires_in = %d, want positive", expiresIn)
	}

	claims, err := js.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user id = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Role != string(user.Role) {
		t.Errorf("claims role = %q, want %q", claims.Role, user.Role)
	}
}

func TestValidateAccessTokenRejectsTampering(t *testing.T) {
	config.Load()

	js := NewJWTService()
	token, _, err := js.generateAccessToken(&models.User{ID: 7, Role: models.RoleClient})
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if _, err := js.ValidateAccessToken("not-a-token"); err == nil {
		t.Error("garbage token should be rejected")
	}

	// Flip the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-2] + "xx"
	if _, err := js.ValidateAccessToken(tampered); err == nil {
		t.Error("tampered signature should be rejected")
	}
}
