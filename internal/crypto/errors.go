package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a symmetric key has the wrong length
	// for its algorithm.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidIVSize is returned when an IV has the wrong length for the
	// mode, or is present where the mode takes none.
	ErrInvalidIVSize = errors.New("invalid IV size")

	// ErrInvalidSecretKeySize is returned when the secret key size is invalid.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidCiphertextSize is returned when the ciphertext size is invalid.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrInvalidKeyEncoding is returned when encoded key material cannot be
	// parsed or belongs to a different algorithm.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrUnsupportedAlgorithm is returned when an algorithm, mode, padding,
	// digest or KDF name is not implemented by the provider.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidBlockLength is returned when unpadded input is not a whole
	// number of cipher blocks.
	ErrInvalidBlockLength = errors.New("input is not a multiple of the block size")

	// ErrInvalidPadding is returned when padding does not verify on decryption.
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMessageTooLong is returned when an RSA plaintext exceeds the modulus
	// capacity for the selected padding.
	ErrMessageTooLong = errors.New("message too long for RSA key size")

	// ErrParamsMismatch is returned when two Diffie-Hellman keys were built
	// from different domain parameters.
	ErrParamsMismatch = errors.New("key agreement parameters mismatch")

	// ErrAgreementFailed is returned when key agreement yields an invalid
	// shared value, such as a low-order X25519 point.
	ErrAgreementFailed = errors.New("key agreement failed")

	// ErrInvalidKeyPairSize is returned when a requested key pair size is out
	// of range for the algorithm.
	ErrInvalidKeyPairSize = errors.New("invalid key pair size")
)
