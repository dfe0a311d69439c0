package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the package-wide fallback random source.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// Direction selects encryption or decryption in [Provider.Transform].
type Direction int

const (
	// Encrypt transforms plaintext into ciphertext.
	Encrypt Direction = iota + 1
	// Decrypt transforms ciphertext into plaintext.
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// KeyPairAlgorithm names an asymmetric key pair type.
type KeyPairAlgorithm string

const (
	// KeyPairRSA is an RSA key pair encoded as PKIX / PKCS#8 DER.
	KeyPairRSA KeyPairAlgorithm = "RSA"
	// KeyPairDH is a finite-field Diffie-Hellman key pair.
	KeyPairDH KeyPairAlgorithm = "DiffieHellman"
	// KeyPairX25519 is an X25519 key pair.
	KeyPairX25519 KeyPairAlgorithm = "X25519"
	// KeyPairMLKEM768 is an ML-KEM-768 key pair.
	KeyPairMLKEM768 KeyPairAlgorithm = "ML-KEM-768"
)

// KeyPairParams selects the size or domain parameters of a new key pair.
type KeyPairParams struct {
	// Bits is the RSA modulus size or the Diffie-Hellman prime size.
	Bits int
	// DH, when set, reuses a peer's Diffie-Hellman domain parameters and
	// Bits is ignored.
	DH *DHParams
}

// KeyPair holds encoded asymmetric key material.
type KeyPair struct {
	// Algorithm identifies the encoding of both keys.
	Algorithm KeyPairAlgorithm
	// PublicKey is the encoded public key.
	PublicKey []byte
	// PrivateKey is the encoded private key.
	PrivateKey []byte
}

// Provider is the capability the facade delegates every cryptographic
// computation to. Implementations must be safe for concurrent use.
type Provider interface {
	// RandomBytes returns n bytes from a cryptographically secure source.
	RandomBytes(n int) ([]byte, error)
	// Transform runs a symmetric or RSA transform over input.
	Transform(t Transformation, key, iv []byte, dir Direction, input []byte) ([]byte, error)
	// GenerateKeyPair creates a new encoded key pair.
	GenerateKeyPair(alg KeyPairAlgorithm, params KeyPairParams) (*KeyPair, error)
	// Agree computes the raw shared value from a private key and a peer's
	// public key.
	Agree(alg KeyPairAlgorithm, privateKey, peerPublicKey []byte) ([]byte, error)
	// Encapsulate creates a shared secret and its encapsulation for a public key.
	Encapsulate(alg KeyPairAlgorithm, publicKey []byte) (ciphertext, secret []byte, err error)
	// Decapsulate recovers the shared secret from an encapsulation.
	Decapsulate(alg KeyPairAlgorithm, privateKey, ciphertext []byte) ([]byte, error)
	// Digest hashes input.
	Digest(alg DigestAlgorithm, input []byte) ([]byte, error)
	// MAC computes a keyed authentication tag over input.
	MAC(alg MACAlgorithm, key, input []byte) ([]byte, error)
	// DeriveKey runs a key derivation function.
	DeriveKey(params KDFParams) ([]byte, error)
}

// Default is the reference [Provider] built on the Go standard library,
// golang.org/x/crypto and circl.
type Default struct {
	rand io.Reader
}

var _ Provider = (*Default)(nil)

// NewDefault creates the reference provider. A nil reader selects
// crypto/rand (or the reader installed by [SetRandReaderForTesting]).
func NewDefault(r io.Reader) *Default {
	return &Default{rand: r}
}

func (p *Default) reader() io.Reader {
	if p != nil && p.rand != nil {
		return p.rand
	}
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// RandomBytes returns n random bytes.
func (p *Default) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid byte count: %d", n)
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(p.reader(), b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// Transform dispatches to the RSA, stream or block cipher implementation.
func (p *Default) Transform(t Transformation, key, iv []byte, dir Direction, input []byte) ([]byte, error) {
	if dir != Encrypt && dir != Decrypt {
		return nil, fmt.Errorf("%w: direction %v", ErrUnsupportedAlgorithm, dir)
	}

	switch t.Algorithm {
	case AlgorithmRSA:
		if len(iv) != 0 {
			return nil, fmt.Errorf("%w: RSA takes no IV", ErrInvalidIVSize)
		}
		return p.transformRSA(t.Padding, key, dir, input)
	case AlgorithmRC4:
		if len(iv) != 0 {
			return nil, fmt.Errorf("%w: RC4 takes no IV", ErrInvalidIVSize)
		}
		return transformRC4(key, input)
	default:
		return p.transformBlock(t, key, iv, dir, input)
	}
}

// GenerateKeyPair creates a key pair for the requested algorithm.
func (p *Default) GenerateKeyPair(alg KeyPairAlgorithm, params KeyPairParams) (*KeyPair, error) {
	switch alg {
	case KeyPairRSA:
		return p.generateRSAKeyPair(params.Bits)
	case KeyPairDH:
		dhParams := params.DH
		if dhParams == nil {
			var err error
			dhParams, err = DHGroupParams(params.Bits)
			if err != nil {
				return nil, err
			}
		}
		return p.generateDHKeyPair(dhParams)
	case KeyPairX25519:
		return p.generateX25519KeyPair()
	case KeyPairMLKEM768:
		return p.generateMLKEMKeyPair()
	}
	return nil, fmt.Errorf("%w: key pair %q", ErrUnsupportedAlgorithm, alg)
}

// Agree runs Diffie-Hellman or X25519 key agreement.
func (p *Default) Agree(alg KeyPairAlgorithm, privateKey, peerPublicKey []byte) ([]byte, error) {
	switch alg {
	case KeyPairDH:
		return agreeDH(privateKey, peerPublicKey)
	case KeyPairX25519:
		return agreeX25519(privateKey, peerPublicKey)
	}
	return nil, fmt.Errorf("%w: %q does not support key agreement", ErrUnsupportedAlgorithm, alg)
}

// Encapsulate runs ML-KEM-768 encapsulation.
func (p *Default) Encapsulate(alg KeyPairAlgorithm, publicKey []byte) ([]byte, []byte, error) {
	if alg != KeyPairMLKEM768 {
		return nil, nil, fmt.Errorf("%w: %q does not support encapsulation", ErrUnsupportedAlgorithm, alg)
	}
	return p.encapsulateMLKEM(publicKey)
}

// Decapsulate runs ML-KEM-768 decapsulation.
func (p *Default) Decapsulate(alg KeyPairAlgorithm, privateKey, ciphertext []byte) ([]byte, error) {
	if alg != KeyPairMLKEM768 {
		return nil, fmt.Errorf("%w: %q does not support encapsulation", ErrUnsupportedAlgorithm, alg)
	}
	return decapsulateMLKEM(privateKey, ciphertext)
}
