package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	t.Parallel()
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		salt   []byte
		info   []byte
		length int
	}{
		{"basic 32 bytes", make([]byte, 32), []byte("info"), 32},
		{"empty salt", nil, []byte("info"), 32},
		{"empty info", make([]byte, 32), nil, 32},
		{"16 byte key", make([]byte, 32), []byte("info"), 16},
		{"64 byte key", make([]byte, 32), []byte("info"), 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(secret, tt.salt, tt.info, tt.length)
			if err != nil {
				t.Fatalf("DeriveKey() error = %v", err)
			}

			if len(key) != tt.length {
				t.Errorf("key length = %d, want %d", len(key), tt.length)
			}
		})
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	t.Parallel()
	secret := []byte("test secret key for derivation")
	salt := []byte("test salt value")
	info := []byte("test info value")

	key1, err := DeriveKey(secret, salt, info, 32)
	if err != nil {
		t.Fatal(err)
	}

	key2, err := DeriveKey(secret, salt, info, 32)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(key1, key2) {
		t.Error("DeriveKey not deterministic: same inputs produced different outputs")
	}
}

func TestDeriveKey_ExceedsMaxLength(t *testing.T) {
	t.Parallel()
	// HKDF-SHA-512 can produce at most 255 * 64 = 16320 bytes
	_, err := DeriveKey([]byte("test secret"), []byte("test salt"), []byte("test info"), 16321)
	if err == nil {
		t.Error("expected error when requesting more than HKDF max output")
	}
}

func TestProviderDeriveKey_PBKDF2(t *testing.T) {
	t.Parallel()
	p := NewDefault(nil)

	base := KDFParams{
		KDF:        KDFPBKDF2SHA1,
		Secret:     []byte("1"),
		Salt:       []byte("12345678"),
		Iterations: 1000,
		Length:     48,
	}

	key1, err := p.DeriveKey(base)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if len(key1) != 48 {
		t.Errorf("key length = %d, want 48", len(key1))
	}

	t.Run("deterministic", func(t *testing.T) {
		key2, _ := p.DeriveKey(base)
		if !bytes.Equal(key1, key2) {
			t.Error("same inputs produced different keys")
		}
	})

	t.Run("different salt", func(t *testing.T) {
		params := base
		params.Salt = []byte("87654321")
		key2, _ := p.DeriveKey(params)
		if bytes.Equal(key1, key2) {
			t.Error("different salt produced same key")
		}
	})

	t.Run("different digest", func(t *testing.T) {
		params := base
		params.KDF = KDFPBKDF2SHA256
		key2, _ := p.DeriveKey(params)
		if bytes.Equal(key1, key2) {
			t.Error("different digest produced same key")
		}
	})
}

func TestProviderDeriveKey_Invalid(t *testing.T) {
	t.Parallel()
	p := NewDefault(nil)

	tests := []struct {
		name   string
		params KDFParams
	}{
		{"zero length", KDFParams{KDF: KDFHKDFSHA512, Secret: []byte("s")}},
		{"zero iterations", KDFParams{KDF: KDFPBKDF2SHA1, Secret: []byte("s"), Length: 16}},
		{"unknown kdf", KDFParams{KDF: "scrypt", Secret: []byte("s"), Length: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.DeriveKey(tt.params); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := p.DeriveKey(KDFParams{KDF: "scrypt", Length: 16})
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func BenchmarkDeriveKey(b *testing.B) {
	secret := make([]byte, 32)
	salt := make([]byte, 32)
	info := []byte("benchmark info")

	rand.Read(secret)
	rand.Read(salt)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DeriveKey(secret, salt, info, 32)
	}
}
