package store

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 2
	argonMemory  = 19 * 1024 // KiB
	argonThreads = 1
	argonKeyLen  = 32
	saltLen      = 16
)

// credentialHasher is implemented by *Hasher.
type credentialHasher interface {
	Hash(username, password string) string
	Verify(username, password, encoded string) bool
}

// Hasher derives password digests with argon2id. The salt is an HMAC of the
// username keyed by a server-side pepper, so a given (username, password)
// always produces the same digest while equal passwords of different users
// do not collide.
type Hasher struct {
	pepper []byte
}

// NewHasher creates a Hasher keyed by pepper.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: []byte(pepper)}
}

// Hash returns the encoded digest for password:
// $argon2id$v=19$m=<mem>,t=<time>,p=<threads>$<salt>$<key>
func (h *Hasher) Hash(username, password string) string {
	salt := h.salt(username)
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// Verify reports whether password matches encoded. Parameters are read from
// encoded, so digests stay valid if the defaults change.
func (h *Hasher) Verify(username, password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || !hmac.Equal(salt, h.salt(username)) {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *Hasher) salt(username string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(username))
	return mac.Sum(nil)[:saltLen]
}
