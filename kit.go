package cryptokit

import (
	"fmt"
)

// Kit bundles every component over a single Provider. It holds no mutable
// state and is safe for concurrent use.
type Kit struct {
	Keys       *KeyGenerator
	Symmetric  *SymmetricCipher
	Asymmetric *AsymmetricCipher
	Password   *PasswordCipher
	MAC        *MacEngine

	provider Provider
}

// New creates a Kit. Without WithProvider it uses the reference provider.
func New(opts ...Option) (*Kit, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.pbeIterations <= 0 {
		return nil, fmt.Errorf("invalid PBE iteration count: %d", cfg.pbeIterations)
	}
	if !cfg.macKind.IsMAC() {
		return nil, &KeyError{Kind: cfg.macKind, Message: "MAC algorithm must be an HMAC key kind"}
	}
	if cfg.provider == nil {
		cfg.provider = NewDefaultProvider(cfg.rand)
	}

	return &Kit{
		Keys:       &KeyGenerator{cfg: cfg},
		Symmetric:  &SymmetricCipher{cfg: cfg},
		Asymmetric: &AsymmetricCipher{cfg: cfg},
		Password:   &PasswordCipher{cfg: cfg},
		MAC:        &MacEngine{cfg: cfg},
		provider:   cfg.provider,
	}, nil
}

// Provider returns the provider the Kit delegates to.
func (k *Kit) Provider() Provider {
	return k.provider
}
