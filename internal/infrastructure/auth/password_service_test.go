package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("s3cret-pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret-pw" || strings.Contains(hash, "s3cret-pw") {
		t.Error("hash must not contain the plaintext password")
	}

	if !svc.Verify(hash, "s3cret-pw") {
		t.Error("expected correct password to verify")
	}
	if svc.Verify(hash, "wrong-pw") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	h1, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := svc.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("expected two hashes of the same password to differ")
	}
}
