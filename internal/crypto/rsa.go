package crypto

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"hash"
	"math/big"
)

func (p *Default) generateRSAKeyPair(bits int) (*KeyPair, error) {
	if bits < RSAMinBits || bits > RSAMaxBits {
		return nil, fmt.Errorf("%w: RSA %d bits, want %d..%d", ErrInvalidKeyPairSize, bits, RSAMinBits, RSAMaxBits)
	}

	priv, err := rsa.GenerateKey(p.reader(), bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode RSA public key: %w", err)
	}
	privBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("failed to encode RSA private key: %w", err)
	}

	return &KeyPair{
		Algorithm:  KeyPairRSA,
		PublicKey:  pubBytes,
		PrivateKey: privBytes,
	}, nil
}

// ParseRSAPublicKey decodes a PKIX DER RSA public key.
func ParseRSAPublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", ErrInvalidKeyEncoding)
	}
	return pub, nil
}

// ParseRSAPrivateKey decodes a PKCS#8 DER RSA private key.
func ParseRSAPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA private key", ErrInvalidKeyEncoding)
	}
	return priv, nil
}

// RSAMaxMessageSize returns the largest plaintext, in bytes, that fits a
// modulus of modulusBytes under padding.
func RSAMaxMessageSize(padding Padding, modulusBytes int) (int, error) {
	switch padding {
	case NoPadding:
		return modulusBytes, nil
	case PKCS1Padding:
		return modulusBytes - PKCS1Overhead, nil
	case OAEPSHA1Padding:
		return modulusBytes - 2*sha1.Size - 2, nil
	case OAEPSHA256Padding:
		return modulusBytes - 2*sha256.Size - 2, nil
	}
	return 0, fmt.Errorf("%w: RSA padding %q", ErrUnsupportedAlgorithm, padding)
}

func oaepHash(padding Padding) hash.Hash {
	if padding == OAEPSHA256Padding {
		return sha256.New()
	}
	return sha1.New()
}

func (p *Default) transformRSA(padding Padding, key []byte, dir Direction, input []byte) ([]byte, error) {
	if dir == Encrypt {
		pub, err := ParseRSAPublicKey(key)
		if err != nil {
			return nil, err
		}

		limit, err := RSAMaxMessageSize(padding, pub.Size())
		if err != nil {
			return nil, err
		}
		if len(input) > limit {
			return nil, fmt.Errorf("%w: got %d, max %d", ErrMessageTooLong, len(input), limit)
		}

		switch padding {
		case NoPadding:
			return encryptRSARaw(pub, input)
		case PKCS1Padding:
			return rsa.EncryptPKCS1v15(p.reader(), pub, input)
		default:
			return rsa.EncryptOAEP(oaepHash(padding), p.reader(), pub, input, nil)
		}
	}

	priv, err := ParseRSAPrivateKey(key)
	if err != nil {
		return nil, err
	}
	if len(input) != priv.Size() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidCiphertextSize, len(input), priv.Size())
	}

	var out []byte
	switch padding {
	case NoPadding:
		return decryptRSARaw(priv, input)
	case PKCS1Padding:
		out, err = rsa.DecryptPKCS1v15(nil, priv, input)
	case OAEPSHA1Padding, OAEPSHA256Padding:
		out, err = rsa.DecryptOAEP(oaepHash(padding), nil, priv, input, nil)
	default:
		return nil, fmt.Errorf("%w: RSA padding %q", ErrUnsupportedAlgorithm, padding)
	}
	if err != nil {
		if errors.Is(err, rsa.ErrDecryption) {
			return nil, ErrDecryptionFailed
		}
		return nil, err
	}
	return out, nil
}

// encryptRSARaw is textbook RSA: the message is read as a big-endian
// integer, which zero-pads it on the left to the modulus length.
func encryptRSARaw(pub *rsa.PublicKey, msg []byte) ([]byte, error) {
	m := new(big.Int).SetBytes(msg)
	if m.Cmp(pub.N) >= 0 {
		return nil, fmt.Errorf("%w: message value exceeds modulus", ErrMessageTooLong)
	}

	c := new(big.Int).Exp(m, big.NewInt(int64(pub.E)), pub.N)
	return c.FillBytes(make([]byte, pub.Size())), nil
}

// decryptRSARaw returns the full modulus-length block; leading zero bytes
// are kept and trimming is left to the caller.
func decryptRSARaw(priv *rsa.PrivateKey, ct []byte) ([]byte, error) {
	c := new(big.Int).SetBytes(ct)
	if c.Cmp(priv.N) >= 0 {
		return nil, ErrDecryptionFailed
	}

	m := new(big.Int).Exp(c, priv.D, priv.N)
	return m.FillBytes(make([]byte, priv.Size())), nil
}
