package cryptokit

import (
	"errors"
	"fmt"

	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyMaterial is returned when a key has the wrong length,
	// kind or encoding for the operation.
	ErrInvalidKeyMaterial = errors.New("invalid key material")

	// ErrInvalidIV is returned when an IV has the wrong length, or is
	// present where the mode takes none, or absent where it needs one.
	ErrInvalidIV = errors.New("invalid IV")

	// ErrUnsupportedSpec is returned for an illegal family, mode and padding
	// combination, or when a spec is used with the wrong cipher component.
	ErrUnsupportedSpec = errors.New("unsupported cipher spec")

	// ErrUnsupportedKeySize is returned when a requested key size is not a
	// multiple of 8 or is outside the legal range for its kind.
	ErrUnsupportedKeySize = errors.New("unsupported key size")

	// ErrMessageTooLong is returned when an RSA plaintext exceeds the modulus
	// capacity for the selected padding.
	ErrMessageTooLong = errors.New("message too long")

	// ErrKeyAgreementMismatch is returned when two keys cannot take part in
	// the same key agreement.
	ErrKeyAgreementMismatch = errors.New("key agreement mismatch")

	// ErrProviderFailure is returned when the provider rejects an operation,
	// for example because padding does not verify on decryption.
	ErrProviderFailure = errors.New("provider failure")
)

// CryptoKitError is implemented by all errors returned from this package.
type CryptoKitError interface {
	error
	CryptoKitError() // marker method
}

// KeyError reports key material that cannot be used for an operation.
type KeyError struct {
	Kind    KeyKind // zero when the key is asymmetric or unknown
	Message string
	Err     error
}

func (e *KeyError) Error() string {
	if e.Kind != KeyKindInvalid {
		return fmt.Sprintf("invalid %s key: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("invalid key: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyError) Is(target error) bool {
	return target == ErrInvalidKeyMaterial
}

// CryptoKitError implements the CryptoKitError interface.
func (e *KeyError) CryptoKitError() {}

// KeySizeError reports a key generation request of an unsupported size.
type KeySizeError struct {
	Kind string
	Bits int
	Err  error
}

func (e *KeySizeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported %s key size: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("unsupported %s key size: %d bits", e.Kind, e.Bits)
}

// Unwrap returns the underlying error.
func (e *KeySizeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeySizeError) Is(target error) bool {
	return target == ErrUnsupportedKeySize
}

// CryptoKitError implements the CryptoKitError interface.
func (e *KeySizeError) CryptoKitError() {}

// IVError reports a missing, unexpected or wrongly sized IV.
type IVError struct {
	Spec string
	Got  int
	Want int // 0 when the cipher spec takes no IV
	Err  error
}

func (e *IVError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid IV for %s: %v", e.Spec, e.Err)
	}
	if e.Want == 0 {
		return fmt.Sprintf("invalid IV for %s: takes no IV, got %d bytes", e.Spec, e.Got)
	}
	return fmt.Sprintf("invalid IV for %s: got %d bytes, want %d", e.Spec, e.Got, e.Want)
}

// Unwrap returns the underlying error.
func (e *IVError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *IVError) Is(target error) bool {
	return target == ErrInvalidIV
}

// CryptoKitError implements the CryptoKitError interface.
func (e *IVError) CryptoKitError() {}

// SpecError reports a cipher spec that is illegal or used in the wrong place.
type SpecError struct {
	Spec    string
	Message string
	Err     error
}

func (e *SpecError) Error() string {
	if e.Spec == "" {
		return fmt.Sprintf("unsupported cipher spec: %s", e.Message)
	}
	return fmt.Sprintf("unsupported cipher spec %q: %s", e.Spec, e.Message)
}

// Unwrap returns the underlying error.
func (e *SpecError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *SpecError) Is(target error) bool {
	return target == ErrUnsupportedSpec
}

// CryptoKitError implements the CryptoKitError interface.
func (e *SpecError) CryptoKitError() {}

// MessageTooLongError reports an RSA plaintext over the modulus capacity.
type MessageTooLongError struct {
	Length int
	Max    int
	Err    error
}

func (e *MessageTooLongError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("message too long: %v", e.Err)
	}
	return fmt.Sprintf("message too long: %d bytes, at most %d allowed", e.Length, e.Max)
}

// Unwrap returns the underlying error.
func (e *MessageTooLongError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MessageTooLongError) Is(target error) bool {
	return target == ErrMessageTooLong
}

// CryptoKitError implements the CryptoKitError interface.
func (e *MessageTooLongError) CryptoKitError() {}

// KeyAgreementError reports keys that cannot agree, such as Diffie-Hellman
// keys built from different domain parameters.
type KeyAgreementError struct {
	Message string
	Err     error
}

func (e *KeyAgreementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("key agreement failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("key agreement failed: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *KeyAgreementError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyAgreementError) Is(target error) bool {
	return target == ErrKeyAgreementMismatch
}

// CryptoKitError implements the CryptoKitError interface.
func (e *KeyAgreementError) CryptoKitError() {}

// ProviderError wraps a failure reported by the provider.
type ProviderError struct {
	Op  string // "encrypt", "decrypt", "keypair", "agree", ...
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderFailure
}

// CryptoKitError implements the CryptoKitError interface.
func (e *ProviderError) CryptoKitError() {}

// wrapError converts provider errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var ckErr CryptoKitError
	if errors.As(err, &ckErr) {
		return err
	}

	switch {
	case errors.Is(err, crypto.ErrInvalidKeySize),
		errors.Is(err, crypto.ErrInvalidKeyEncoding),
		errors.Is(err, crypto.ErrInvalidSecretKeySize),
		errors.Is(err, crypto.ErrInvalidPublicKeySize):
		return &KeyError{Message: err.Error(), Err: err}
	case errors.Is(err, crypto.ErrInvalidIVSize):
		return &IVError{Spec: op, Err: err}
	case errors.Is(err, crypto.ErrInvalidKeyPairSize):
		return &KeySizeError{Kind: op, Err: err}
	case errors.Is(err, crypto.ErrMessageTooLong):
		return &MessageTooLongError{Err: err}
	case errors.Is(err, crypto.ErrParamsMismatch),
		errors.Is(err, crypto.ErrAgreementFailed):
		return &KeyAgreementError{Message: "provider rejected the key pair", Err: err}
	case errors.Is(err, crypto.ErrUnsupportedAlgorithm):
		return &SpecError{Message: "not supported by provider", Err: err}
	}

	return &ProviderError{Op: op, Err: err}
}
