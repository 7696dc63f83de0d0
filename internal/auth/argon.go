package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hashing parameters for new staff passwords, following the Argon2 RFC
// recommendations for interactive logins. Stored hashes carry their own
// parameters, so these can be raised later without invalidating
// existing accounts.
const (
	hashMemoryKiB = 64 * 1024
	hashTime      = 3
	hashThreads   = 4
	saltBytes     = 16
	keyBytes      = 32

	// Hashing cost scales with input length; a cap keeps oversized
	// login bodies from burning CPU.
	longestPassword = 1024
)

// hashParams are the Argon2id parameters read back from a stored hash.
type hashParams struct {
	memoryKiB uint32
	time      uint32
	threads   uint8
	keyLen    uint32
}

// HashPassword derives an Argon2id hash of the password and encodes it
// in the standard $argon2id$… form.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > longestPassword {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, hashTime, hashMemoryKiB, hashThreads, keyBytes)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemoryKiB, hashTime, hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// VerifyPassword checks a password against a stored Argon2id hash in
// constant time. A malformed hash answers false rather than an error:
// the caller treats both the same and the split would leak which
// accounts hold legacy values.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if len(password) > longestPassword {
		return false, nil
	}

	salt, storedKey, params, err := parseHash(encodedHash)
	if err != nil {
		return false, nil //nolint:nilerr // malformed hashes answer false, see above
	}

	candidate := argon2.IDKey([]byte(password), salt, params.time, params.memoryKiB, params.threads, params.keyLen)

	return subtle.ConstantTimeCompare(storedKey, candidate) == 1, nil
}

// parseHash splits a $argon2id$v=…$m=…,t=…,p=…$salt$key string into its
// salt, derived key, and parameters.
func parseHash(encodedHash string) (salt, key []byte, params *hashParams, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params = &hashParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memoryKiB, &params.time, &params.threads); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}

	params.keyLen = uint32(len(key)) //nolint:gosec // derived keys are keyBytes long

	return salt, key, params, nil
}
