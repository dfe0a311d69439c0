package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// DigestAlgorithm names a hash function.
type DigestAlgorithm string

const (
	DigestSHA1   DigestAlgorithm = "SHA-1"
	DigestSHA256 DigestAlgorithm = "SHA-256"
	DigestSHA512 DigestAlgorithm = "SHA-512"
)

// MACAlgorithm names an HMAC construction.
type MACAlgorithm string

const (
	HmacSHA1   MACAlgorithm = "HmacSHA1"
	HmacSHA256 MACAlgorithm = "HmacSHA256"
	HmacSHA512 MACAlgorithm = "HmacSHA512"
)

func newHash(alg DigestAlgorithm) (func() hash.Hash, error) {
	switch alg {
	case DigestSHA1:
		return sha1.New, nil
	case DigestSHA256:
		return sha256.New, nil
	case DigestSHA512:
		return sha512.New, nil
	}
	return nil, fmt.Errorf("%w: digest %q", ErrUnsupportedAlgorithm, alg)
}

// MACDigest returns the digest underlying an HMAC algorithm.
func MACDigest(alg MACAlgorithm) (DigestAlgorithm, error) {
	switch alg {
	case HmacSHA1:
		return DigestSHA1, nil
	case HmacSHA256:
		return DigestSHA256, nil
	case HmacSHA512:
		return DigestSHA512, nil
	}
	return "", fmt.Errorf("%w: MAC %q", ErrUnsupportedAlgorithm, alg)
}

// Digest hashes input with alg.
func (p *Default) Digest(alg DigestAlgorithm, input []byte) ([]byte, error) {
	h, err := newHash(alg)
	if err != nil {
		return nil, err
	}
	d := h()
	d.Write(input)
	return d.Sum(nil), nil
}

// MAC computes HMAC(key, input) with alg.
func (p *Default) MAC(alg MACAlgorithm, key, input []byte) ([]byte, error) {
	digest, err := MACDigest(alg)
	if err != nil {
		return nil, err
	}
	h, err := newHash(digest)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty MAC key", ErrInvalidKeySize)
	}

	m := hmac.New(h, key)
	m.Write(input)
	return m.Sum(nil), nil
}
