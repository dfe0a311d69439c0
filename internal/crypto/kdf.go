package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// KDF names a key derivation function.
type KDF string

const (
	// KDFHKDFSHA512 is HKDF (RFC 5869) over SHA-512.
	KDFHKDFSHA512 KDF = "HKDF-SHA-512"
	// KDFPBKDF2SHA1 is PBKDF2 with HMAC-SHA-1.
	KDFPBKDF2SHA1 KDF = "PBKDF2WithHmacSHA1"
	// KDFPBKDF2SHA256 is PBKDF2 with HMAC-SHA-256.
	KDFPBKDF2SHA256 KDF = "PBKDF2WithHmacSHA256"
)

// KDFParams are the inputs of [Provider.DeriveKey].
type KDFParams struct {
	KDF KDF
	// Secret is the input key material or password bytes.
	Secret []byte
	// Salt is optional for HKDF; if empty a zero-filled salt is used.
	Salt []byte
	// Info is the HKDF context; ignored by PBKDF2.
	Info []byte
	// Iterations is the PBKDF2 iteration count; ignored by HKDF.
	Iterations int
	// Length is the desired output length in bytes.
	Length int
}

// DeriveKey runs the selected key derivation function.
func (p *Default) DeriveKey(params KDFParams) ([]byte, error) {
	if params.Length <= 0 {
		return nil, fmt.Errorf("invalid derived key length: %d", params.Length)
	}

	switch params.KDF {
	case KDFHKDFSHA512:
		return DeriveKey(params.Secret, params.Salt, params.Info, params.Length)
	case KDFPBKDF2SHA1, KDFPBKDF2SHA256:
		if params.Iterations <= 0 {
			return nil, fmt.Errorf("invalid iteration count: %d", params.Iterations)
		}
		h := sha1.New
		if params.KDF == KDFPBKDF2SHA256 {
			h = sha256.New
		}
		return pbkdf2.Key(params.Secret, params.Salt, params.Iterations, params.Length, h), nil
	}
	return nil, fmt.Errorf("%w: KDF %q", ErrUnsupportedAlgorithm, params.KDF)
}

// DeriveKey derives a key using HKDF-SHA-512.
//
// Parameters:
//   - secret: the input key material (e.g., an agreed or encapsulated secret)
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
