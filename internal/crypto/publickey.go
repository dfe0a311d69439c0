package crypto

import (
	"crypto/x509"
	"fmt"
	"math/big"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// PublicKeyFromPrivate recomputes the encoded public key that belongs to an
// encoded private key.
func PublicKeyFromPrivate(alg KeyPairAlgorithm, privateKey []byte) ([]byte, error) {
	switch alg {
	case KeyPairRSA:
		priv, err := ParseRSAPrivateKey(privateKey)
		if err != nil {
			return nil, err
		}
		pub, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to encode RSA public key: %w", err)
		}
		return pub, nil

	case KeyPairDH:
		params, x, err := unmarshalDHKey(dhPrivateTag, privateKey)
		if err != nil {
			return nil, err
		}
		if x.Sign() <= 0 || x.Cmp(params.P) >= 0 {
			return nil, fmt.Errorf("%w: DH private value out of range", ErrInvalidKeyEncoding)
		}
		y := new(big.Int).Exp(params.G, x, params.P)
		return marshalDHKey(dhPublicTag, params, y), nil

	case KeyPairX25519:
		if len(privateKey) != X25519KeySize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSecretKeySize, len(privateKey), X25519KeySize)
		}
		var priv, pub x25519.Key
		copy(priv[:], privateKey)
		x25519.KeyGen(&pub, &priv)
		return append([]byte(nil), pub[:]...), nil

	case KeyPairMLKEM768:
		if err := CheckMLKEMSecretKey(privateKey); err != nil {
			return nil, err
		}
		return MLKEMPublicKeyFromSecret(privateKey)
	}
	return nil, fmt.Errorf("%w: key pair %q", ErrUnsupportedAlgorithm, alg)
}

// CheckMLKEMSecretKey reports whether secretKey unpacks as an ML-KEM-768
// secret key.
func CheckMLKEMSecretKey(secretKey []byte) error {
	if len(secretKey) != MLKEMSecretKeySize {
		return ErrInvalidSecretKeySize
	}
	var priv mlkem768.PrivateKey
	if err := priv.Unpack(secretKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	return nil
}

// CheckMLKEMPublicKey reports whether publicKey unpacks as an ML-KEM-768
// public key.
func CheckMLKEMPublicKey(publicKey []byte) error {
	if len(publicKey) != MLKEMPublicKeySize {
		return ErrInvalidPublicKeySize
	}
	var pub mlkem768.PublicKey
	if err := pub.Unpack(publicKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	return nil
}
