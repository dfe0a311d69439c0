package crypto

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

var (
	rsaOnce    sync.Once
	rsaKeyPair *KeyPair
	rsaErr     error
)

// testRSAKeyPair returns a shared 1024-bit key pair; generation is slow.
func testRSAKeyPair(t testing.TB) *KeyPair {
	t.Helper()
	rsaOnce.Do(func() {
		rsaKeyPair, rsaErr = NewDefault(nil).GenerateKeyPair(KeyPairRSA, KeyPairParams{Bits: 1024})
	})
	if rsaErr != nil {
		t.Fatalf("GenerateKeyPair(RSA) error = %v", rsaErr)
	}
	return rsaKeyPair
}

func TestGenerateKeyPair_RSA(t *testing.T) {
	kp := testRSAKeyPair(t)

	if kp.Algorithm != KeyPairRSA {
		t.Errorf("Algorithm = %s, want RSA", kp.Algorithm)
	}

	pub, err := ParseRSAPublicKey(kp.PublicKey)
	if err != nil {
		t.Fatalf("ParseRSAPublicKey() error = %v", err)
	}
	if pub.N.BitLen() != 1024 {
		t.Errorf("modulus = %d bits, want 1024", pub.N.BitLen())
	}

	if _, err := ParseRSAPrivateKey(kp.PrivateKey); err != nil {
		t.Fatalf("ParseRSAPrivateKey() error = %v", err)
	}
}

func TestGenerateKeyPair_RSAInvalidSize(t *testing.T) {
	p := NewDefault(nil)
	for _, bits := range []int{0, 512, 16384} {
		_, err := p.GenerateKeyPair(KeyPairRSA, KeyPairParams{Bits: bits})
		if !errors.Is(err, ErrInvalidKeyPairSize) {
			t.Errorf("bits=%d: expected ErrInvalidKeyPairSize, got %v", bits, err)
		}
	}
}

func TestTransform_RSARoundTrip(t *testing.T) {
	p := NewDefault(nil)
	kp := testRSAKeyPair(t)
	input := []byte("rsa test")

	for _, padding := range []Padding{PKCS1Padding, OAEPSHA1Padding, OAEPSHA256Padding} {
		t.Run(string(padding), func(t *testing.T) {
			tr := Transformation{AlgorithmRSA, ModeECB, padding}
			ct, err := p.Transform(tr, kp.PublicKey, nil, Encrypt, input)
			if err != nil {
				t.Fatalf("encrypt error = %v", err)
			}
			if len(ct) != 128 {
				t.Errorf("ciphertext length = %d, want 128", len(ct))
			}

			got, err := p.Transform(tr, kp.PrivateKey, nil, Decrypt, ct)
			if err != nil {
				t.Fatalf("decrypt error = %v", err)
			}
			if !bytes.Equal(got, input) {
				t.Errorf("decrypted = %q, want %q", got, input)
			}
		})
	}
}

func TestTransform_RSANoPadding(t *testing.T) {
	p := NewDefault(nil)
	kp := testRSAKeyPair(t)
	tr := Transformation{AlgorithmRSA, ModeECB, NoPadding}
	input := []byte("rsa test")

	ct, err := p.Transform(tr, kp.PublicKey, nil, Encrypt, input)
	if err != nil {
		t.Fatal(err)
	}

	got, err := p.Transform(tr, kp.PrivateKey, nil, Decrypt, ct)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 128 {
		t.Fatalf("decrypted length = %d, want full modulus 128", len(got))
	}
	if !bytes.Equal(got[128-len(input):], input) {
		t.Errorf("decrypted tail = %q, want %q", got[128-len(input):], input)
	}
	if !bytes.Equal(got[:128-len(input)], make([]byte, 128-len(input))) {
		t.Error("expected leading zero padding")
	}
}

func TestTransform_RSAMessageTooLong(t *testing.T) {
	p := NewDefault(nil)
	kp := testRSAKeyPair(t)

	tests := []struct {
		padding Padding
		max     int
	}{
		{PKCS1Padding, 128 - 11},
		{OAEPSHA1Padding, 128 - 42},
		{OAEPSHA256Padding, 128 - 66},
		{NoPadding, 128},
	}

	for _, tt := range tests {
		t.Run(string(tt.padding), func(t *testing.T) {
			tr := Transformation{AlgorithmRSA, ModeECB, tt.padding}
			_, err := p.Transform(tr, kp.PublicKey, nil, Encrypt, bytes.Repeat([]byte{0x7f}, tt.max+1))
			if !errors.Is(err, ErrMessageTooLong) {
				t.Errorf("expected ErrMessageTooLong, got %v", err)
			}
		})
	}

	t.Run("NoPadding value above modulus", func(t *testing.T) {
		tr := Transformation{AlgorithmRSA, ModeECB, NoPadding}
		_, err := p.Transform(tr, kp.PublicKey, nil, Encrypt, bytes.Repeat([]byte{0xff}, 128))
		if !errors.Is(err, ErrMessageTooLong) {
			t.Errorf("expected ErrMessageTooLong, got %v", err)
		}
	})
}

func TestTransform_RSAWrongKeyType(t *testing.T) {
	p := NewDefault(nil)
	kp := testRSAKeyPair(t)
	tr := Transformation{AlgorithmRSA, ModeECB, PKCS1Padding}

	t.Run("private key for encrypt", func(t *testing.T) {
		_, err := p.Transform(tr, kp.PrivateKey, nil, Encrypt, []byte("x"))
		if !errors.Is(err, ErrInvalidKeyEncoding) {
			t.Errorf("expected ErrInvalidKeyEncoding, got %v", err)
		}
	})

	t.Run("public key for decrypt", func(t *testing.T) {
		_, err := p.Transform(tr, kp.PublicKey, nil, Decrypt, make([]byte, 128))
		if !errors.Is(err, ErrInvalidKeyEncoding) {
			t.Errorf("expected ErrInvalidKeyEncoding, got %v", err)
		}
	})
}

func TestTransform_RSATamperedCiphertext(t *testing.T) {
	p := NewDefault(nil)
	kp := testRSAKeyPair(t)
	tr := Transformation{AlgorithmRSA, ModeECB, OAEPSHA1Padding}

	ct, err := p.Transform(tr, kp.PublicKey, nil, Encrypt, []byte("sensitive data"))
	if err != nil {
		t.Fatal(err)
	}
	ct[len(ct)/2] ^= 0xff

	_, err = p.Transform(tr, kp.PrivateKey, nil, Decrypt, ct)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}
