package cryptokit

import (
	"crypto/hmac"
)

// MacEngine computes and verifies HMAC tags. The hash is chosen by the key
// kind.
type MacEngine struct {
	cfg *kitConfig
}

// GenerateKey returns a fresh HMAC key of the configured kind, HMAC-SHA-1
// unless WithMACAlgorithm says otherwise.
func (m *MacEngine) GenerateKey() (Key, error) {
	kind := m.cfg.macKind
	raw, err := m.cfg.provider.RandomBytes(kind.DefaultSize())
	if err != nil {
		return Key{}, wrapError("random", err)
	}
	return NewKey(kind, raw)
}

// ComputeMAC returns the HMAC of message under key.
func (m *MacEngine) ComputeMAC(message []byte, key Key) ([]byte, error) {
	if !key.kind.IsMAC() {
		return nil, &KeyError{Kind: key.kind, Message: "not an HMAC key"}
	}
	if err := key.check(key.kind); err != nil {
		return nil, err
	}

	r, _ := key.kind.rule()
	tag, err := m.cfg.provider.MAC(r.mac, key.material, message)
	if err != nil {
		return nil, wrapError("mac", err)
	}
	return tag, nil
}

// Verify reports whether tag is the HMAC of message under key. The
// comparison is constant-time.
func (m *MacEngine) Verify(tag, message []byte, key Key) (bool, error) {
	expected, err := m.ComputeMAC(message, key)
	if err != nil {
		return false, err
	}
	return hmac.Equal(tag, expected), nil
}
