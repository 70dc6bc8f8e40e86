package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// Password hashes are self-describing so verification needs no external
// state and parameter upgrades do not break stored hashes:
//
//	$pbkdf2-sha256$<iterations>$<base64 salt>$<base64 key>
const (
	pbkdf2Scheme     = "pbkdf2-sha256"
	pbkdf2Iterations = 210000
	pbkdf2SaltSize   = 16
	pbkdf2KeySize    = 32
)

var b64 = base64.RawStdEncoding

// HashPassword derives a salted, slow one-way hash of password. Two calls
// with the same password produce different outputs (fresh random salt).
func HashPassword(password string) (string, error) {
	salt := common.GenerateRandByteArray(pbkdf2SaltSize)
	key := derived(password, salt, pbkdf2Iterations)

	return fmt.Sprintf("$%s$%d$%s$%s", pbkdf2Scheme, pbkdf2Iterations, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

func derived(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, pbkdf2KeySize, sha256.New)
}

// VerifyPassword reports whether password matches the encoded hash.
// A malformed hash verifies false, never an error, and the key comparison is
// constant-time.
func VerifyPassword(password, encoded string) bool {
	iterations, salt, key, err := decodePasswordHash(encoded)
	if err != nil {
		return false
	}

	candidate := pbkdf2.Key([]byte(password), salt, iterations, len(key), sha256.New)

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodePasswordHash(encoded string) (int, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != pbkdf2Scheme {
		return 0, nil, nil, errors.New("malformed password hash")
	}

	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations < 1 {
		return 0, nil, nil, errors.New("malformed iteration count")
	}

	salt, err := b64.DecodeString(parts[3])
	if err != nil {
		return 0, nil, nil, err
	}

	key, err := b64.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return 0, nil, nil, errors.New("malformed derived key")
	}

	return iterations, salt, key, nil
}
