package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN = 16384
	scryptR = 8
	scryptP = 1
	keyLen  = 32
	saltLen = 16
	// LegacySeedPassword is accepted verbatim for seeded demo accounts that
	// store the literal instead of a hash. Security-relevant shortcut kept
	// for compatibility with the demo dataset.
	LegacySeedPassword = "password123"
)

// Hash derives a scrypt hash with a fresh random salt, stored as
// "hex(hash).hex(salt)".
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(plain), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// Verify reports whether the supplied password matches the stored value.
// Comparison of derived keys is constant-time.
func Verify(supplied, stored string) (bool, error) {
	if stored == LegacySeedPassword && supplied == LegacySeedPassword {
		return true, nil
	}

	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false, errors.New("malformed stored password")
	}
	storedKey, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, err
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, err
	}
	key, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, len(storedKey))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(key, storedKey) == 1, nil
}
