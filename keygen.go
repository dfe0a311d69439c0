package cryptokit

import (
	"fmt"
	"math/bits"
	"slices"

	bstd "github.com/deneonet/benc/std"
	"github.com/mxmauro/shamir"
	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

const keyShareVersion = 1

// KeyGenerator produces symmetric keys, IVs, salts and key pairs, and
// derives shared keys from key agreement.
type KeyGenerator struct {
	cfg *kitConfig
}

// GenerateSymmetricKey returns a fresh random key of kind with the given
// size in bits. DES accepts 56 or 64 bits and DESede accepts 112, 168 or
// 192 bits; both produce keys with DES parity bits set, and a 112 bit
// DESede key is expanded to K1K2K1.
func (g *KeyGenerator) GenerateSymmetricKey(kind KeyKind, bits int) (Key, error) {
	if _, ok := kind.rule(); !ok {
		return Key{}, &KeyError{Message: fmt.Sprintf("unknown key kind %d", int(kind))}
	}
	if bits <= 0 || bits%8 != 0 {
		return Key{}, &KeySizeError{Kind: kind.String(), Bits: bits}
	}

	var (
		n      int
		expand bool
	)
	switch kind {
	case KeyDES:
		if bits != 56 && bits != 64 {
			return Key{}, &KeySizeError{Kind: kind.String(), Bits: bits}
		}
		n = crypto.DESKeySize
	case KeyDESede:
		switch bits {
		case 112:
			n, expand = 16, true
		case 168, 192:
			n = crypto.DESedeKeySize
		default:
			return Key{}, &KeySizeError{Kind: kind.String(), Bits: bits}
		}
	default:
		n = bits / 8
		if !kind.ValidSize(n) {
			return Key{}, &KeySizeError{Kind: kind.String(), Bits: bits}
		}
	}

	raw, err := g.cfg.provider.RandomBytes(n)
	if err != nil {
		return Key{}, wrapError("random", err)
	}
	if expand {
		raw = append(raw, raw[:8]...)
	}
	if kind == KeyDES || kind == KeyDESede {
		setDESParity(raw)
	}
	return NewKey(kind, raw)
}

// GenerateAESKey returns a fresh 128 bit AES key.
func (g *KeyGenerator) GenerateAESKey() (Key, error) {
	return g.GenerateSymmetricKey(KeyAES, 128)
}

// GenerateHMACKey returns a fresh 160 bit HMAC-SHA-1 key.
func (g *KeyGenerator) GenerateHMACKey() (Key, error) {
	return g.GenerateSymmetricKey(KeyHMACSHA1, 160)
}

// GenerateIV returns a fresh random IV sized for spec, or nil when spec
// takes no IV. Never reuse an IV under the same key.
func (g *KeyGenerator) GenerateIV(spec CipherSpec) ([]byte, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if !spec.RequiresIV() {
		return nil, nil
	}
	iv, err := g.cfg.provider.RandomBytes(spec.IVSize())
	if err != nil {
		return nil, wrapError("random", err)
	}
	return iv, nil
}

// GenerateSalt returns a fresh 8 byte salt for PasswordCipher.
func (g *KeyGenerator) GenerateSalt() ([]byte, error) {
	salt, err := g.cfg.provider.RandomBytes(crypto.PBESaltSize)
	if err != nil {
		return nil, wrapError("random", err)
	}
	return salt, nil
}

// DHGroupSizes lists the Diffie-Hellman prime sizes GenerateKeyPair
// accepts. Each size maps to a fixed published group with generator 2.
func DHGroupSizes() []int {
	return crypto.DHGroupSizes()
}

// GenerateKeyPair creates a first-party key pair. For RSA bits is the
// modulus size (1024 to 8192); for Diffie-Hellman it selects one of the
// fixed groups listed by DHGroupSizes. X25519 and ML-KEM-768 ignore bits.
//
// A peer holding custom Diffie-Hellman parameters should call
// GenerateDHKeyPair with the other party's PublicKey.DHParams.
func (g *KeyGenerator) GenerateKeyPair(alg KeyPairAlgorithm, bits int) (*KeyPair, error) {
	switch alg {
	case KeyPairRSA:
		if bits < crypto.RSAMinBits || bits > crypto.RSAMaxBits || bits%8 != 0 {
			return nil, &KeySizeError{Kind: string(alg), Bits: bits}
		}
	case KeyPairDH:
		if !slices.Contains(crypto.DHGroupSizes(), bits) {
			return nil, &KeySizeError{Kind: string(alg), Bits: bits}
		}
	case KeyPairX25519, KeyPairMLKEM768:
		bits = 0
	default:
		return nil, &SpecError{Spec: string(alg), Message: "unknown key pair algorithm"}
	}

	kp, err := g.cfg.provider.GenerateKeyPair(alg, KeyPairParams{Bits: bits})
	if err != nil {
		return nil, wrapError("keypair", err)
	}
	return newKeyPair(kp), nil
}

// GenerateDHKeyPair creates a second-party Diffie-Hellman key pair from a
// peer's domain parameters.
func (g *KeyGenerator) GenerateDHKeyPair(params *DHParams) (*KeyPair, error) {
	if params == nil || params.P == nil || params.G == nil {
		return nil, &KeyAgreementError{Message: "missing Diffie-Hellman parameters"}
	}

	kp, err := g.cfg.provider.GenerateKeyPair(KeyPairDH, KeyPairParams{DH: params})
	if err != nil {
		return nil, wrapError("keypair", err)
	}
	return newKeyPair(kp), nil
}

// DeriveAgreedKey runs key agreement between a local private key and a
// peer's public key, then expands the raw shared value with HKDF-SHA-512
// into a key of kind's default size. Swapping the roles of the two parties
// yields the same key.
func (g *KeyGenerator) DeriveAgreedKey(peer PublicKey, local PrivateKey, kind KeyKind) (Key, error) {
	if peer.IsZero() || local.IsZero() {
		return Key{}, &KeyError{Message: "key agreement needs both a public and a private key"}
	}
	if peer.alg != local.alg {
		return Key{}, &KeyAgreementError{Message: fmt.Sprintf("%s public key with %s private key", peer.alg, local.alg)}
	}
	if peer.alg != KeyPairDH && peer.alg != KeyPairX25519 {
		return Key{}, &SpecError{Spec: string(peer.alg), Message: "not a key agreement algorithm"}
	}
	if kind.DefaultSize() == 0 {
		return Key{}, &KeyError{Message: fmt.Sprintf("unknown key kind %d", int(kind))}
	}

	if peer.alg == KeyPairDH {
		peerParams, err := peer.DHParams()
		if err != nil {
			return Key{}, err
		}
		localParams, err := local.DHParams()
		if err != nil {
			return Key{}, err
		}
		if !peerParams.Equal(localParams) {
			return Key{}, &KeyAgreementError{Message: "Diffie-Hellman parameters differ"}
		}
	}

	raw, err := g.cfg.provider.Agree(peer.alg, local.encoded, peer.encoded)
	if err != nil {
		return Key{}, wrapError("agree", err)
	}
	return g.expand(raw, kind)
}

// Encapsulate creates a fresh shared key for the holder of an ML-KEM-768
// public key. The returned ciphertext is sent to the peer, who recovers the
// same key with Decapsulate.
func (g *KeyGenerator) Encapsulate(peer PublicKey, kind KeyKind) (Key, []byte, error) {
	if peer.alg != KeyPairMLKEM768 {
		return Key{}, nil, &SpecError{Spec: string(peer.alg), Message: "not a key encapsulation algorithm"}
	}
	if kind.DefaultSize() == 0 {
		return Key{}, nil, &KeyError{Message: fmt.Sprintf("unknown key kind %d", int(kind))}
	}

	ct, secret, err := g.cfg.provider.Encapsulate(peer.alg, peer.encoded)
	if err != nil {
		return Key{}, nil, wrapError("encapsulate", err)
	}
	key, err := g.expand(secret, kind)
	if err != nil {
		return Key{}, nil, err
	}
	return key, ct, nil
}

// Decapsulate recovers the key created by the peer's Encapsulate call.
func (g *KeyGenerator) Decapsulate(local PrivateKey, ciphertext []byte, kind KeyKind) (Key, error) {
	if local.alg != KeyPairMLKEM768 {
		return Key{}, &SpecError{Spec: string(local.alg), Message: "not a key encapsulation algorithm"}
	}
	if kind.DefaultSize() == 0 {
		return Key{}, &KeyError{Message: fmt.Sprintf("unknown key kind %d", int(kind))}
	}

	secret, err := g.cfg.provider.Decapsulate(local.alg, local.encoded, ciphertext)
	if err != nil {
		return Key{}, wrapError("decapsulate", err)
	}
	return g.expand(secret, kind)
}

func (g *KeyGenerator) expand(secret []byte, kind KeyKind) (Key, error) {
	out, err := g.cfg.provider.DeriveKey(KDFParams{
		KDF:    crypto.KDFHKDFSHA512,
		Secret: secret,
		Info:   []byte(g.cfg.agreementInfo + ":" + kind.String()),
		Length: kind.DefaultSize(),
	})
	if err != nil {
		return Key{}, wrapError("derive", err)
	}
	if kind == KeyDES || kind == KeyDESede {
		setDESParity(out)
	}
	return NewKey(kind, out)
}

// SplitKey splits a key into shares using Shamir's secret sharing. Any
// threshold of the shares recovers it with CombineKey. A single share is
// the serialized key itself.
func (g *KeyGenerator) SplitKey(key Key, shares, threshold int) ([][]byte, error) {
	if key.IsZero() {
		return nil, &KeyError{Message: "key is empty"}
	}
	if shares < 1 || threshold < 1 || threshold > shares {
		return nil, fmt.Errorf("invalid share layout: %d of %d", threshold, shares)
	}

	serialized := serializeKey(key)
	if shares == 1 {
		return [][]byte{serialized}, nil
	}
	// Split the key using the Shamir algorithm.
	return shamir.Split(serialized, shares, threshold)
}

// CombineKey reassembles a key from shares produced by SplitKey.
func (g *KeyGenerator) CombineKey(shares [][]byte) (Key, error) {
	switch len(shares) {
	case 0:
		return Key{}, &KeyError{Message: "no key shares"}
	case 1:
		return deserializeKey(shares[0])
	}

	merged, err := shamir.Combine(shares)
	if err != nil {
		return Key{}, &KeyError{Message: "cannot combine key shares", Err: err}
	}
	return deserializeKey(merged)
}

func serializeKey(key Key) []byte {
	bufSize := bstd.SizeUint16() + bstd.SizeUint16() + bstd.SizeBytes(key.material)
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, keyShareVersion)
	ofs = bstd.MarshalUint16(ofs, buf, uint16(key.kind))
	_ = bstd.MarshalBytes(ofs, buf, key.material)

	return buf
}

func deserializeKey(buf []byte) (Key, error) {
	if len(buf) <= bstd.SizeUint16() {
		return Key{}, &KeyError{Message: "malformed key share"}
	}

	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil || version != keyShareVersion {
		return Key{}, &KeyError{Message: "unsupported key share version"}
	}

	var (
		kind     uint16
		material []byte
	)
	if ofs, kind, err = bstd.UnmarshalUint16(ofs, buf); err != nil {
		return Key{}, &KeyError{Message: "malformed key share", Err: err}
	}
	if ofs, material, err = bstd.UnmarshalBytesCopied(ofs, buf); err != nil {
		return Key{}, &KeyError{Message: "malformed key share", Err: err}
	}
	if ofs != len(buf) {
		return Key{}, &KeyError{Message: "malformed key share"}
	}
	return NewKey(KeyKind(kind), material)
}

// setDESParity sets the low bit of each byte so that it has odd parity.
func setDESParity(key []byte) {
	for i, b := range key {
		b &^= 1
		if bits.OnesCount8(b)%2 == 0 {
			b |= 1
		}
		key[i] = b
	}
}
