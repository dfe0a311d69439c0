package cryptokit

import (
	"io"

	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

const (
	// DefaultPBEIterations is the PBKDF2 iteration count PasswordCipher
	// uses unless WithPBEIterations overrides it.
	DefaultPBEIterations = crypto.DefaultPBEIterations

	// DefaultAgreementInfo is the HKDF context prefix for agreed and
	// encapsulated keys.
	DefaultAgreementInfo = crypto.AgreementContext

	defaultMACKind = KeyHMACSHA1
)

// kitConfig holds configuration shared by every component of a Kit.
type kitConfig struct {
	provider      Provider
	rand          io.Reader
	pbeIterations int
	agreementInfo string
	macKind       KeyKind
}

// Option configures a Kit.
type Option func(*kitConfig)

// WithProvider sets the cryptographic provider. A nil provider selects the
// reference implementation.
func WithProvider(p Provider) Option {
	return func(c *kitConfig) {
		c.provider = p
	}
}

// WithRandReader sets the random source of the reference provider.
// It has no effect together with WithProvider.
func WithRandReader(r io.Reader) Option {
	return func(c *kitConfig) {
		c.rand = r
	}
}

// WithPBEIterations sets the PBKDF2 iteration count used by PasswordCipher.
// Both sides of an exchange must use the same count.
func WithPBEIterations(n int) Option {
	return func(c *kitConfig) {
		c.pbeIterations = n
	}
}

// WithAgreementInfo sets the HKDF context prefix used when expanding agreed
// and encapsulated secrets into keys.
func WithAgreementInfo(info string) Option {
	return func(c *kitConfig) {
		c.agreementInfo = info
	}
}

// WithMACAlgorithm sets the key kind produced by MacEngine.GenerateKey.
func WithMACAlgorithm(kind KeyKind) Option {
	return func(c *kitConfig) {
		c.macKind = kind
	}
}

func defaultConfig() *kitConfig {
	return &kitConfig{
		pbeIterations: DefaultPBEIterations,
		agreementInfo: DefaultAgreementInfo,
		macKind:       defaultMACKind,
	}
}
