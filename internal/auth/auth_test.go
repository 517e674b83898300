package auth

import (
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("wrong password matched")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("x", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	token, err := CreateToken("ana")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	username, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if username != "ana" {
		t.Errorf("subject = %s, want ana", username)
	}

	if _, err := VerifyToken(token + "tampered"); err == nil {
		t.Error("tampered token verified")
	}
}
