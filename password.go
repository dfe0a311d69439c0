package cryptokit

import (
	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

// PasswordCipher encrypts under a key and IV derived from a password and
// salt with PBKDF2 over the cipher spec's digest.
//
// The salt is not secret, but it must travel with the ciphertext and should
// be fresh for every message; see KeyGenerator.GenerateSalt.
type PasswordCipher struct {
	cfg *kitConfig
}

// Encrypt derives a key from password and salt and encrypts plaintext under
// a PBE spec. salt must be 8 bytes.
func (c *PasswordCipher) Encrypt(plaintext, password, salt []byte, spec CipherSpec) ([]byte, error) {
	return c.transform(Encrypt, plaintext, password, salt, spec)
}

// Decrypt reverses Encrypt. It needs the same password, salt and spec.
func (c *PasswordCipher) Decrypt(ciphertext, password, salt []byte, spec CipherSpec) ([]byte, error) {
	return c.transform(Decrypt, ciphertext, password, salt, spec)
}

func (c *PasswordCipher) transform(dir Direction, input, password, salt []byte, spec CipherSpec) ([]byte, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if spec.family != FamilyPBE {
		return nil, &SpecError{Spec: spec.String(), Message: "not a password-based spec"}
	}
	if len(password) == 0 {
		return nil, &KeyError{Message: "empty password"}
	}
	if len(salt) != crypto.PBESaltSize {
		return nil, &KeyError{Message: "salt must be 8 bytes"}
	}

	t, err := Resolve(spec)
	if err != nil {
		return nil, err
	}
	ivSize := crypto.BlockSize(spec.cipher)

	kdf := crypto.KDFPBKDF2SHA1
	if spec.digest == DigestSHA256 {
		kdf = crypto.KDFPBKDF2SHA256
	}
	derived, err := c.cfg.provider.DeriveKey(KDFParams{
		KDF:        kdf,
		Secret:     password,
		Salt:       salt,
		Iterations: c.cfg.pbeIterations,
		Length:     spec.keySize + ivSize,
	})
	if err != nil {
		return nil, wrapError("derive", err)
	}

	// Twofish has no KeyKind, so the derived pair goes to the provider
	// directly rather than through SymmetricCipher.
	key, iv := derived[:spec.keySize], derived[spec.keySize:]
	out, err := c.cfg.provider.Transform(t, key, iv, dir, input)
	if err != nil {
		return nil, wrapError(dir.String(), err)
	}
	return out, nil
}
