package passwords_test

import (
	"strings"
	"testing"

	"github.com/jrazmi/tasker/sdk/passwords"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCheck(t *testing.T) {
	h := passwords.NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if strings.Contains(hash, "hunter2") {
		t.Fatal("Hash must not contain the plaintext")
	}

	if !h.Check("hunter2", hash) {
		t.Error("Expected correct password to verify")
	}
	if h.Check("hunter3", hash) {
		t.Error("Expected wrong password to fail")
	}
	if h.Check("hunter2", "not-a-bcrypt-hash") {
		t.Error("Expected malformed hash to fail")
	}
}

func TestBcrypt_Salted(t *testing.T) {
	h := passwords.NewBcrypt(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Error("Expected distinct hashes for the same password")
	}
}
