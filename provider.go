package cryptokit

import (
	"io"

	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

// Provider is the cryptographic backend every component delegates to.
// Implementations must be safe for concurrent use.
type Provider = crypto.Provider

// Provider-facing types, re-exported so that alternative providers can be
// written outside this module.
type (
	// Transformation selects a single transform, e.g. "AES/CBC/PKCS5Padding".
	Transformation = crypto.Transformation
	// Algorithm names a cipher algorithm inside a Transformation.
	Algorithm = crypto.Algorithm
	// Mode names a block cipher mode of operation.
	Mode = crypto.Mode
	// Padding names a padding scheme.
	Padding = crypto.Padding
	// Direction selects encryption or decryption.
	Direction = crypto.Direction
	// KeyPairAlgorithm names an asymmetric key pair type.
	KeyPairAlgorithm = crypto.KeyPairAlgorithm
	// KeyPairParams selects the size or domain parameters of a new key pair.
	KeyPairParams = crypto.KeyPairParams
	// ProviderKeyPair is the encoded key pair returned by a Provider.
	ProviderKeyPair = crypto.KeyPair
	// DHParams are finite-field Diffie-Hellman domain parameters.
	DHParams = crypto.DHParams
	// DigestAlgorithm names a hash function.
	DigestAlgorithm = crypto.DigestAlgorithm
	// MACAlgorithm names an HMAC construction.
	MACAlgorithm = crypto.MACAlgorithm
	// KDF names a key derivation function.
	KDF = crypto.KDF
	// KDFParams are the inputs of Provider.DeriveKey.
	KDFParams = crypto.KDFParams
)

const (
	Encrypt = crypto.Encrypt
	Decrypt = crypto.Decrypt
)

// Block modes.
const (
	ModeECB  = crypto.ModeECB
	ModeCBC  = crypto.ModeCBC
	ModeCFB  = crypto.ModeCFB
	ModeOFB  = crypto.ModeOFB
	ModeCTR  = crypto.ModeCTR
	ModePCBC = crypto.ModePCBC
)

// Padding schemes. The first four apply to block ciphers, the rest to RSA.
const (
	NoPadding         = crypto.NoPadding
	PKCS5Padding      = crypto.PKCS5Padding
	ISO10126Padding   = crypto.ISO10126Padding
	ZeroBytePadding   = crypto.ZeroBytePadding
	PKCS1Padding      = crypto.PKCS1Padding
	OAEPSHA1Padding   = crypto.OAEPSHA1Padding
	OAEPSHA256Padding = crypto.OAEPSHA256Padding
)

// Key pair algorithms.
const (
	KeyPairRSA      = crypto.KeyPairRSA
	KeyPairDH       = crypto.KeyPairDH
	KeyPairX25519   = crypto.KeyPairX25519
	KeyPairMLKEM768 = crypto.KeyPairMLKEM768
)

// Digests used by password-based specs.
const (
	DigestSHA1   = crypto.DigestSHA1
	DigestSHA256 = crypto.DigestSHA256
)

// NewDefaultProvider returns the reference provider. A nil reader selects
// crypto/rand.
func NewDefaultProvider(r io.Reader) Provider {
	return crypto.NewDefault(r)
}
