package tests

import (
	"testing"

	"ewaste/utils"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := utils.HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "pw123" {
		t.Fatalf("plaintext stored")
	}
	if !utils.CheckPasswordHash("pw123", hashed) {
		t.Fatalf("correct password rejected")
	}
	if utils.CheckPasswordHash("pw124", hashed) {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, _ := utils.HashPassword("same")
	b, _ := utils.HashPassword("same")
	if a == b {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestGenerateVerifyToken(t *testing.T) {
	token, err := utils.GenerateToken("a@x.com", 42, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@x.com" || !claims.IsAdmin {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	if _, err := utils.VerifyToken("garbage"); err == nil {
		t.Fatalf("garbage token accepted")
	}
	if _, err := utils.VerifyToken(""); err == nil {
		t.Fatalf("empty token accepted")
	}
}
