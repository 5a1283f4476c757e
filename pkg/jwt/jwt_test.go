package jwt

import (
	"errors"
	"testing"
	"time"

	"clinic-services/config"
)

func newService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestGeneratePair_RoundTrip(t *testing.T) {
	s := newService()

	pair, err := s.GeneratePair(42, "alice")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if pair.AccessTokenID == pair.RefreshTokenID {
		t.Error("access and refresh tokens share an id")
	}

	claims, err := s.ValidateTyped(pair.AccessToken, AccessToken)
	if err != nil {
		t.Fatalf("ValidateTyped(access): %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.TokenID != pair.AccessTokenID {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := s.ValidateTyped(pair.RefreshToken, AccessToken); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("refresh used as access: got %v, want ErrWrongTokenType", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	s := newService()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, _, err := s.GenerateAccessToken(1, "bob")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newService().GenerateAccessToken(1, "bob")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected signature mismatch to be rejected")
	}
	if _, err := other.ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}
