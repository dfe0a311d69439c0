package crypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// PublicKeyOffset is the byte offset where the public key is embedded
// within an ML-KEM-768 secret key.
const PublicKeyOffset = 1152

func (p *Default) generateMLKEMKeyPair() (*KeyPair, error) {
	pub, priv, err := mlkem768.GenerateKeyPair(p.reader())
	if err != nil {
		return nil, err
	}

	// MarshalBinary never fails for valid keys from GenerateKeyPair
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &KeyPair{
		Algorithm:  KeyPairMLKEM768,
		PublicKey:  pubBytes,
		PrivateKey: privBytes,
	}, nil
}

// MLKEMPublicKeyFromSecret extracts the public key from a secret key.
// In ML-KEM-768, the public key is embedded in the secret key.
func MLKEMPublicKeyFromSecret(secretKey []byte) ([]byte, error) {
	if len(secretKey) != MLKEMSecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}

	publicKey := make([]byte, MLKEMPublicKeySize)
	copy(publicKey, secretKey[PublicKeyOffset:PublicKeyOffset+MLKEMPublicKeySize])
	return publicKey, nil
}

func (p *Default) encapsulateMLKEM(publicKey []byte) ([]byte, []byte, error) {
	if len(publicKey) != MLKEMPublicKeySize {
		return nil, nil, ErrInvalidPublicKeySize
	}

	var pub mlkem768.PublicKey
	if err := pub.Unpack(publicKey); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}

	seed := make([]byte, MLKEMSeedSize)
	if _, err := io.ReadFull(p.reader(), seed); err != nil {
		return nil, nil, fmt.Errorf("failed to generate encapsulation seed: %w", err)
	}

	ct := make([]byte, MLKEMCiphertextSize)
	sharedSecret := make([]byte, MLKEMSharedKeySize)
	pub.EncapsulateTo(ct, sharedSecret, seed)

	return ct, sharedSecret, nil
}

func decapsulateMLKEM(privateKey, ciphertext []byte) ([]byte, error) {
	if len(privateKey) != MLKEMSecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}
	if len(ciphertext) != MLKEMCiphertextSize {
		return nil, ErrInvalidCiphertextSize
	}

	var priv mlkem768.PrivateKey
	if err := priv.Unpack(privateKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}

	sharedSecret := make([]byte, MLKEMSharedKeySize)
	priv.DecapsulateTo(sharedSecret, ciphertext)

	return sharedSecret, nil
}
