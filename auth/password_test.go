package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword("s3cret-password", hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("s3cret-password", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, expected distinct salts")
	}
}
