package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// ---------- BCRYPT ----------

const BcryptCost = 12

// HashPasswordBcrypt returns a bcrypt hash (salt included).
func HashPasswordBcrypt(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func ComparePasswordBcrypt(hashedPassword, password string) error {
	if hashedPassword == "" || password == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ---------- ARGON2id ----------
// encoded as argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<base64_salt>$<base64_hash>

var (
	ArgonTime    uint32 = 1
	ArgonMemory  uint32 = 64 * 1024
	ArgonThreads uint8  = 4
	ArgonKeyLen  uint32 = 32
	SaltLen             = 16
)

const argonPrefix = "argon2id$"

func HashPasswordArgon2(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}

	salt, err := generateRandomBytes(SaltLen)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, ArgonTime, ArgonMemory, ArgonThreads, ArgonKeyLen)

	return fmt.Sprintf("%sv=19$m=%d,t=%d,p=%d$%s$%s", argonPrefix,
		ArgonMemory, ArgonTime, ArgonThreads, base64Encode(salt), base64Encode(hash)), nil
}

// ComparePasswordArgon2 returns nil when password matches encodedHash.
func ComparePasswordArgon2(encodedHash, password string) error {
	if encodedHash == "" || password == "" {
		return errors.New("invalid input")
	}

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return errors.New("invalid hash format")
	}

	var memory, timeParam uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &timeParam, &threads); err != nil {
		return fmt.Errorf("failed to parse argon2 params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return err
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return err
	}

	derived := argon2.IDKey([]byte(password), salt, timeParam, memory, threads, uint32(len(hash)))
	if subtle.ConstantTimeCompare(hash, derived) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

// ComparePassword checks password against an argon2id or bcrypt hash.
func ComparePassword(encodedHash, password string) error {
	if strings.HasPrefix(encodedHash, argonPrefix) {
		return ComparePasswordArgon2(encodedHash, password)
	}
	if err := ComparePasswordBcrypt(encodedHash, password); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// ---------- helpers ----------

func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func base64Encode(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}
