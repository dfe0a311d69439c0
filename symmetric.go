package cryptokit

// SymmetricCipher encrypts and decrypts with block and stream cipher specs.
//
// Decrypting with a key, IV or spec other than the ones used to encrypt does
// not always fail: only PKCS5Padding checks its padding, and the other
// schemes return garbage without an error.
type SymmetricCipher struct {
	cfg *kitConfig
}

// Encrypt encrypts plaintext under key. iv must be present and sized to
// spec.IVSize when spec.RequiresIV, and must be nil otherwise.
func (c *SymmetricCipher) Encrypt(plaintext []byte, key Key, spec CipherSpec, iv []byte) ([]byte, error) {
	return c.transform(Encrypt, plaintext, key, spec, iv)
}

// Decrypt reverses Encrypt. It needs the same key, spec and IV.
func (c *SymmetricCipher) Decrypt(ciphertext []byte, key Key, spec CipherSpec, iv []byte) ([]byte, error) {
	return c.transform(Decrypt, ciphertext, key, spec, iv)
}

// EncryptWithRandomIV encrypts under a fresh random IV and returns it
// prepended to the ciphertext. Specs that take no IV return the bare
// ciphertext.
func (c *SymmetricCipher) EncryptWithRandomIV(plaintext []byte, key Key, spec CipherSpec) ([]byte, error) {
	if err := c.check(key, spec); err != nil {
		return nil, err
	}
	if !spec.RequiresIV() {
		return c.Encrypt(plaintext, key, spec, nil)
	}

	iv, err := c.cfg.provider.RandomBytes(spec.IVSize())
	if err != nil {
		return nil, wrapError("random", err)
	}
	ct, err := c.Encrypt(plaintext, key, spec, iv)
	if err != nil {
		return nil, err
	}
	return append(iv, ct...), nil
}

// DecryptWithPrefixedIV reverses EncryptWithRandomIV.
func (c *SymmetricCipher) DecryptWithPrefixedIV(data []byte, key Key, spec CipherSpec) ([]byte, error) {
	if err := c.check(key, spec); err != nil {
		return nil, err
	}
	if !spec.RequiresIV() {
		return c.Decrypt(data, key, spec, nil)
	}

	n := spec.IVSize()
	if len(data) < n {
		return nil, &IVError{Spec: spec.String(), Got: len(data), Want: n}
	}
	return c.Decrypt(data[n:], key, spec, data[:n])
}

// EncryptAgreed encrypts under a key agreed between the local private key
// and the peer's public key, sized for spec. The peer decrypts with
// DecryptAgreed, passing its own private key and the local public key.
func (c *SymmetricCipher) EncryptAgreed(plaintext []byte, peer PublicKey, local PrivateKey, spec CipherSpec, iv []byte) ([]byte, error) {
	key, err := c.agreedKey(peer, local, spec)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(plaintext, key, spec, iv)
}

// DecryptAgreed reverses EncryptAgreed.
func (c *SymmetricCipher) DecryptAgreed(ciphertext []byte, peer PublicKey, local PrivateKey, spec CipherSpec, iv []byte) ([]byte, error) {
	key, err := c.agreedKey(peer, local, spec)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(ciphertext, key, spec, iv)
}

func (c *SymmetricCipher) agreedKey(peer PublicKey, local PrivateKey, spec CipherSpec) (Key, error) {
	if err := spec.validate(); err != nil {
		return Key{}, err
	}
	if !spec.symmetric() {
		return Key{}, &SpecError{Spec: spec.String(), Message: "not a symmetric cipher spec"}
	}
	keys := &KeyGenerator{cfg: c.cfg}
	return keys.DeriveAgreedKey(peer, local, spec.KeyKind())
}

func (c *SymmetricCipher) check(key Key, spec CipherSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	if !spec.symmetric() {
		return &SpecError{Spec: spec.String(), Message: "not a symmetric cipher spec"}
	}
	return key.check(spec.KeyKind())
}

func (c *SymmetricCipher) transform(dir Direction, input []byte, key Key, spec CipherSpec, iv []byte) ([]byte, error) {
	if err := c.check(key, spec); err != nil {
		return nil, err
	}
	if spec.RequiresIV() {
		if len(iv) != spec.IVSize() {
			return nil, &IVError{Spec: spec.String(), Got: len(iv), Want: spec.IVSize()}
		}
	} else if len(iv) != 0 {
		return nil, &IVError{Spec: spec.String(), Got: len(iv)}
	}

	t, err := Resolve(spec)
	if err != nil {
		return nil, err
	}
	out, err := c.cfg.provider.Transform(t, key.material, iv, dir, input)
	if err != nil {
		return nil, wrapError(dir.String(), err)
	}
	return out, nil
}
