package cryptokit

import (
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"

	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

// KeyKind identifies what a symmetric key is for and fixes its legal sizes.
type KeyKind int

const (
	KeyKindInvalid KeyKind = iota
	// KeyAES is an AES key of 16, 24 or 32 bytes.
	KeyAES
	// KeyDES is an 8 byte DES key (56 effective bits).
	KeyDES
	// KeyDESede is a 24 byte three-key DESede key.
	KeyDESede
	// KeyRC4 is an RC4 key of 5 to 256 bytes.
	KeyRC4
	// KeyHMACSHA1 is an HMAC-SHA-1 key of 5 to 512 bytes.
	KeyHMACSHA1
	// KeyHMACSHA256 is an HMAC-SHA-256 key of 5 to 512 bytes.
	KeyHMACSHA256
	// KeyHMACSHA512 is an HMAC-SHA-512 key of 5 to 512 bytes.
	KeyHMACSHA512
)

type keyRule struct {
	name        string
	sizes       []int // fixed byte lengths; nil means the [min, max] range
	min, max    int
	defaultBits int
	mac         crypto.MACAlgorithm
}

var keyRules = map[KeyKind]keyRule{
	KeyAES:        {name: "AES", sizes: []int{16, 24, 32}, defaultBits: 128},
	KeyDES:        {name: "DES", sizes: []int{crypto.DESKeySize}, defaultBits: 64},
	KeyDESede:     {name: "DESede", sizes: []int{crypto.DESedeKeySize}, defaultBits: 192},
	KeyRC4:        {name: "RC4", min: crypto.RC4MinKeySize, max: crypto.RC4MaxKeySize, defaultBits: 128},
	KeyHMACSHA1:   {name: "HmacSHA1", min: 5, max: 512, defaultBits: 160, mac: crypto.HmacSHA1},
	KeyHMACSHA256: {name: "HmacSHA256", min: 5, max: 512, defaultBits: 256, mac: crypto.HmacSHA256},
	KeyHMACSHA512: {name: "HmacSHA512", min: 5, max: 512, defaultBits: 512, mac: crypto.HmacSHA512},
}

func (k KeyKind) rule() (keyRule, bool) {
	r, ok := keyRules[k]
	return r, ok
}

func (k KeyKind) String() string {
	if r, ok := k.rule(); ok {
		return r.name
	}
	return fmt.Sprintf("KeyKind(%d)", int(k))
}

// ParseKeyKind looks up a key kind by name, ignoring case. Names match
// KeyKind.String, for example "AES" or "HmacSHA256".
func ParseKeyKind(name string) (KeyKind, error) {
	name = strings.TrimSpace(name)
	for kind, r := range keyRules {
		if strings.EqualFold(r.name, name) {
			return kind, nil
		}
	}
	return KeyKindInvalid, &KeyError{Message: fmt.Sprintf("unknown key kind %q", name)}
}

// DefaultSize returns the key length in bytes generated or derived when no
// size is requested, or 0 for an unknown kind.
func (k KeyKind) DefaultSize() int {
	r, ok := k.rule()
	if !ok {
		return 0
	}
	return r.defaultBits / 8
}

// ValidSize reports whether n bytes is a legal length for the kind.
func (k KeyKind) ValidSize(n int) bool {
	r, ok := k.rule()
	if !ok {
		return false
	}
	if r.sizes != nil {
		return slices.Contains(r.sizes, n)
	}
	return n >= r.min && n <= r.max
}

// IsMAC reports whether the kind is an HMAC key.
func (k KeyKind) IsMAC() bool {
	r, ok := k.rule()
	return ok && r.mac != ""
}

// Key is an immutable symmetric key tagged with its kind.
type Key struct {
	kind     KeyKind
	material []byte
}

// NewKey wraps raw key bytes. The length must be legal for kind; keys are
// never truncated or padded to fit. raw is copied.
func NewKey(kind KeyKind, raw []byte) (Key, error) {
	if _, ok := kind.rule(); !ok {
		return Key{}, &KeyError{Message: fmt.Sprintf("unknown key kind %d", int(kind))}
	}
	if !kind.ValidSize(len(raw)) {
		return Key{}, &KeyError{Kind: kind, Message: fmt.Sprintf("%d bytes is not a legal length", len(raw))}
	}
	return Key{kind: kind, material: append([]byte(nil), raw...)}, nil
}

// Kind returns the key kind.
func (k Key) Kind() KeyKind { return k.kind }

// Len returns the key length in bytes.
func (k Key) Len() int { return len(k.material) }

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte { return append([]byte(nil), k.material...) }

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.kind == KeyKindInvalid && k.material == nil }

// Equal reports whether two keys have the same kind and material. The
// comparison of material is constant-time.
func (k Key) Equal(o Key) bool {
	return k.kind == o.kind && subtle.ConstantTimeCompare(k.material, o.material) == 1
}

// check verifies that k is a usable key of the wanted kind.
func (k Key) check(want KeyKind) error {
	if k.IsZero() {
		return &KeyError{Kind: want, Message: "key is empty"}
	}
	if k.kind != want {
		return &KeyError{Kind: want, Message: fmt.Sprintf("got a %s key", k.kind)}
	}
	if !k.kind.ValidSize(len(k.material)) {
		return &KeyError{Kind: want, Message: fmt.Sprintf("%d bytes is not a legal length", len(k.material))}
	}
	return nil
}

// PublicKey is an encoded public key tagged with its algorithm.
//
// RSA keys are PKIX DER, Diffie-Hellman keys embed their DHParams, X25519 keys
// are 32 raw bytes and ML-KEM-768 keys use the packed FIPS 203 form.
type PublicKey struct {
	alg     KeyPairAlgorithm
	encoded []byte
}

// PrivateKey is an encoded private key tagged with its algorithm.
//
// RSA keys are PKCS#8 DER; the other algorithms mirror PublicKey.
type PrivateKey struct {
	alg     KeyPairAlgorithm
	encoded []byte
}

// KeyPair owns a matching public and private key.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// NewPublicKey wraps an encoded public key after checking that it parses
// for alg. encoded is copied.
func NewPublicKey(alg KeyPairAlgorithm, encoded []byte) (PublicKey, error) {
	if err := validateEncodedKey(alg, encoded, true); err != nil {
		return PublicKey{}, err
	}
	return PublicKey{alg: alg, encoded: append([]byte(nil), encoded...)}, nil
}

// NewPrivateKey wraps an encoded private key after checking that it parses
// for alg. encoded is copied.
func NewPrivateKey(alg KeyPairAlgorithm, encoded []byte) (PrivateKey, error) {
	if err := validateEncodedKey(alg, encoded, false); err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{alg: alg, encoded: append([]byte(nil), encoded...)}, nil
}

// Algorithm returns the key pair algorithm.
func (k PublicKey) Algorithm() KeyPairAlgorithm { return k.alg }

// Bytes returns a copy of the encoded key.
func (k PublicKey) Bytes() []byte { return append([]byte(nil), k.encoded...) }

// IsZero reports whether k is the zero PublicKey.
func (k PublicKey) IsZero() bool { return k.alg == "" && k.encoded == nil }

// DHParams returns the domain parameters of a Diffie-Hellman key. A peer
// passes them to KeyGenerator.GenerateDHKeyPair to build a compatible pair.
func (k PublicKey) DHParams() (*DHParams, error) {
	return dhParamsOf(k.alg, k.encoded)
}

// Algorithm returns the key pair algorithm.
func (k PrivateKey) Algorithm() KeyPairAlgorithm { return k.alg }

// Bytes returns a copy of the encoded key.
func (k PrivateKey) Bytes() []byte { return append([]byte(nil), k.encoded...) }

// IsZero reports whether k is the zero PrivateKey.
func (k PrivateKey) IsZero() bool { return k.alg == "" && k.encoded == nil }

// PublicKey recomputes the public half of k.
func (k PrivateKey) PublicKey() (PublicKey, error) {
	if k.IsZero() {
		return PublicKey{}, &KeyError{Message: "key is empty"}
	}
	pub, err := crypto.PublicKeyFromPrivate(k.alg, k.encoded)
	if err != nil {
		return PublicKey{}, wrapError("public key", err)
	}
	return PublicKey{alg: k.alg, encoded: pub}, nil
}

// DHParams returns the domain parameters of a Diffie-Hellman key.
func (k PrivateKey) DHParams() (*DHParams, error) {
	return dhParamsOf(k.alg, k.encoded)
}

func dhParamsOf(alg KeyPairAlgorithm, encoded []byte) (*DHParams, error) {
	if alg != KeyPairDH {
		return nil, &KeyError{Message: fmt.Sprintf("%s keys carry no Diffie-Hellman parameters", alg)}
	}
	params, err := crypto.DHParamsFromKey(encoded)
	if err != nil {
		return nil, &KeyError{Message: "malformed Diffie-Hellman key", Err: err}
	}
	return params, nil
}

func newKeyPair(kp *ProviderKeyPair) *KeyPair {
	return &KeyPair{
		Public:  PublicKey{alg: kp.Algorithm, encoded: kp.PublicKey},
		Private: PrivateKey{alg: kp.Algorithm, encoded: kp.PrivateKey},
	}
}

func validateEncodedKey(alg KeyPairAlgorithm, encoded []byte, public bool) error {
	var err error
	switch alg {
	case KeyPairRSA:
		if public {
			_, err = crypto.ParseRSAPublicKey(encoded)
		} else {
			_, err = crypto.ParseRSAPrivateKey(encoded)
		}
	case KeyPairDH:
		_, err = crypto.ParseDHKey(encoded, public)
	case KeyPairX25519:
		if len(encoded) != crypto.X25519KeySize {
			err = fmt.Errorf("got %d bytes, want %d", len(encoded), crypto.X25519KeySize)
		}
	case KeyPairMLKEM768:
		if public {
			err = crypto.CheckMLKEMPublicKey(encoded)
		} else {
			err = crypto.CheckMLKEMSecretKey(encoded)
		}
	default:
		return &SpecError{Spec: string(alg), Message: "unknown key pair algorithm"}
	}
	if err != nil {
		return &KeyError{Message: fmt.Sprintf("malformed %s key", alg), Err: err}
	}
	return nil
}
