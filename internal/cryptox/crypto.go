// Package cryptox implements password digest computation and
// verification for the directory store.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/dirstore/internal/common"
)

// Mode selects the password digest algorithm.
type Mode string

const (
	// ModeSHA256 is the legacy unsalted single-round digest. It keeps
	// byte parity with directories written by older versions; NewSalt
	// returns nil in this mode.
	ModeSHA256 Mode = "sha256"

	// ModeArgon2id derives a salted, memory-hard digest and is the
	// recommended default.
	ModeArgon2id Mode = "argon2id"
)

const saltSize = 32

// Hasher computes fixed-length password digests in the configured mode.
type Hasher struct {
	mode Mode
}

func NewHasher(mode Mode) (*Hasher, error) {
	switch mode {
	case ModeSHA256, ModeArgon2id:
		return &Hasher{mode: mode}, nil
	default:
		return nil, fmt.Errorf("unknown hash mode %q", mode)
	}
}

func (h *Hasher) Mode() Mode {
	return h.mode
}

// NewSalt returns a fresh random salt for the configured mode, or nil
// when the mode does not use one.
func (h *Hasher) NewSalt() []byte {
	if h.mode == ModeSHA256 {
		return nil
	}
	return common.GenerateRandByteArray(saltSize)
}

// Hash computes the 32-byte digest of password with the given salt.
// The salt is ignored in sha256 mode.
func (h *Hasher) Hash(password, salt []byte) []byte {
	if h.mode == ModeArgon2id {
		return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
	}
	sum := sha256.Sum256(password)
	return sum[:]
}

// Verify reports whether candidate equals stored. The comparison is
// constant-time so it leaks nothing about where the digests differ.
func Verify(stored, candidate []byte) bool {
	return subtle.ConstantTimeCompare(stored, candidate) == 1
}
