package crypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

func (p *Default) generateX25519KeyPair() (*KeyPair, error) {
	var pub, priv x25519.Key
	if _, err := io.ReadFull(p.reader(), priv[:]); err != nil {
		return nil, fmt.Errorf("failed to generate X25519 key: %w", err)
	}
	x25519.KeyGen(&pub, &priv)

	return &KeyPair{
		Algorithm:  KeyPairX25519,
		PublicKey:  append([]byte(nil), pub[:]...),
		PrivateKey: append([]byte(nil), priv[:]...),
	}, nil
}

func agreeX25519(privateKey, peerPublicKey []byte) ([]byte, error) {
	if len(privateKey) != X25519KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSecretKeySize, len(privateKey), X25519KeySize)
	}
	if len(peerPublicKey) != X25519KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(peerPublicKey), X25519KeySize)
	}

	var priv, pub, shared x25519.Key
	copy(priv[:], privateKey)
	copy(pub[:], peerPublicKey)

	if !x25519.Shared(&shared, &priv, &pub) {
		return nil, fmt.Errorf("%w: low-order X25519 public key", ErrAgreementFailed)
	}
	return shared[:], nil
}
