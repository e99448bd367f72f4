// Package passwords salts, hashes and verifies user credentials.
package passwords

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher generates a salted hash from a plaintext password and compares a
// plaintext password with a stored hash.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// Bcrypt implements Hasher with bcrypt. The salt is embedded in the hash.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt hasher. A cost of zero selects bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		// malformed hash; never a match
		return false
	}
	return err == nil
}
