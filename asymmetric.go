package cryptokit

import (
	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

// AsymmetricCipher encrypts with an RSA public key and decrypts with the
// matching private key.
type AsymmetricCipher struct {
	cfg *kitConfig
}

// Encrypt encrypts plaintext with an RSA public key. The plaintext may be at
// most k-11 bytes for PKCS1Padding, k-2h-2 for OAEP with an h byte digest,
// and k for NoPadding, where k is the modulus size in bytes.
func (c *AsymmetricCipher) Encrypt(plaintext []byte, public PublicKey, spec CipherSpec) ([]byte, error) {
	if err := checkRSA(public.alg, spec); err != nil {
		return nil, err
	}

	pub, err := crypto.ParseRSAPublicKey(public.encoded)
	if err != nil {
		return nil, &KeyError{Message: "malformed RSA public key", Err: err}
	}
	limit, err := crypto.RSAMaxMessageSize(spec.padding, pub.Size())
	if err != nil {
		return nil, wrapError("encrypt", err)
	}
	if len(plaintext) > limit {
		return nil, &MessageTooLongError{Length: len(plaintext), Max: limit}
	}

	t, err := Resolve(spec)
	if err != nil {
		return nil, err
	}
	ct, err := c.cfg.provider.Transform(t, public.encoded, nil, Encrypt, plaintext)
	if err != nil {
		return nil, wrapError("encrypt", err)
	}
	return ct, nil
}

// Decrypt decrypts ciphertext with an RSA private key.
//
// With NoPadding the result is the full modulus-sized block, left-padded
// with zero bytes. Stripping them is up to the caller, for example with
// TrimLeadingZeros when the message is known not to start with 0x00.
func (c *AsymmetricCipher) Decrypt(ciphertext []byte, private PrivateKey, spec CipherSpec) ([]byte, error) {
	if err := checkRSA(private.alg, spec); err != nil {
		return nil, err
	}

	t, err := Resolve(spec)
	if err != nil {
		return nil, err
	}
	pt, err := c.cfg.provider.Transform(t, private.encoded, nil, Decrypt, ciphertext)
	if err != nil {
		return nil, wrapError("decrypt", err)
	}
	return pt, nil
}

func checkRSA(alg KeyPairAlgorithm, spec CipherSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	if spec.family != FamilyRSA {
		return &SpecError{Spec: spec.String(), Message: "not an RSA spec"}
	}
	if alg != KeyPairRSA {
		return &KeyError{Message: "RSA spec needs an RSA key"}
	}
	return nil
}

// TrimLeadingZeros returns b without its leading zero bytes.
func TrimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
