package cryptokit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vaultsandbox/cryptokit/internal/crypto"
)

// Family is the algorithm family of a CipherSpec.
type Family int

const (
	familyInvalid Family = iota
	FamilyAES
	FamilyDES
	FamilyDESede
	FamilyRC4
	FamilyRSA
	FamilyPBE
)

func (f Family) String() string {
	switch f {
	case FamilyAES:
		return "AES"
	case FamilyDES:
		return "DES"
	case FamilyDESede:
		return "DESede"
	case FamilyRC4:
		return "RC4"
	case FamilyRSA:
		return "RSA"
	case FamilyPBE:
		return "PBE"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

var (
	blockModes    = []Mode{ModeECB, ModeCBC, ModeCFB, ModeOFB, ModeCTR, ModePCBC}
	blockPaddings = []Padding{NoPadding, PKCS5Padding, ISO10126Padding, ZeroBytePadding}
	rsaPaddings   = []Padding{NoPadding, PKCS1Padding, OAEPSHA1Padding, OAEPSHA256Padding}
)

// CipherSpec selects an algorithm family, block mode and padding. Values
// are immutable and comparable; only the constructors and the predefined
// specs produce valid ones. The zero CipherSpec is invalid.
type CipherSpec struct {
	family  Family
	mode    Mode
	padding Padding

	// PBE only: the digest and cipher the password key is derived for.
	name    string
	digest  DigestAlgorithm
	cipher  Algorithm
	keySize int
}

// Predefined specs.
var (
	AESECBPKCS5       = mustSpec(NewBlockSpec(FamilyAES, ModeECB, PKCS5Padding))
	AESCBCPKCS5       = mustSpec(NewBlockSpec(FamilyAES, ModeCBC, PKCS5Padding))
	AESCBCZeroByte    = mustSpec(NewBlockSpec(FamilyAES, ModeCBC, ZeroBytePadding))
	AESCTRNoPadding   = mustSpec(NewBlockSpec(FamilyAES, ModeCTR, NoPadding))
	DESECBPKCS5       = mustSpec(NewBlockSpec(FamilyDES, ModeECB, PKCS5Padding))
	DESCBCPKCS5       = mustSpec(NewBlockSpec(FamilyDES, ModeCBC, PKCS5Padding))
	DESCFBPKCS5       = mustSpec(NewBlockSpec(FamilyDES, ModeCFB, PKCS5Padding))
	DESOFBPKCS5       = mustSpec(NewBlockSpec(FamilyDES, ModeOFB, PKCS5Padding))
	DESCTRPKCS5       = mustSpec(NewBlockSpec(FamilyDES, ModeCTR, PKCS5Padding))
	DESPCBCPKCS5      = mustSpec(NewBlockSpec(FamilyDES, ModePCBC, PKCS5Padding))
	DESedeCBCPKCS5    = mustSpec(NewBlockSpec(FamilyDESede, ModeCBC, PKCS5Padding))
	DESedeCBCISO10126 = mustSpec(NewBlockSpec(FamilyDESede, ModeCBC, ISO10126Padding))
	RC4               = CipherSpec{family: FamilyRC4}
	RSAECBPKCS1       = mustSpec(NewRSASpec(PKCS1Padding))
	RSAECBOAEPSHA1    = mustSpec(NewRSASpec(OAEPSHA1Padding))
	RSAECBOAEPSHA256  = mustSpec(NewRSASpec(OAEPSHA256Padding))
	RSAECBNoPadding   = mustSpec(NewRSASpec(NoPadding))
)

// Password-based specs. The password and salt derive both the key and the IV.
var (
	PBEWithSHAAndTwofishCBC = CipherSpec{
		family:  FamilyPBE,
		mode:    ModeCBC,
		padding: PKCS5Padding,
		name:    "PBEWithSHAAndTwofish-CBC",
		digest:  DigestSHA1,
		cipher:  crypto.AlgorithmTwofish,
		keySize: 32,
	}

	PBEWithSHA256AndAES256CBC = CipherSpec{
		family:  FamilyPBE,
		mode:    ModeCBC,
		padding: PKCS5Padding,
		name:    "PBEWithHmacSHA256AndAES_256",
		digest:  DigestSHA256,
		cipher:  crypto.AlgorithmAES,
		keySize: 32,
	}
)

func mustSpec(s CipherSpec, err error) CipherSpec {
	if err != nil {
		panic(err)
	}
	return s
}

// NewBlockSpec returns the spec for a block cipher family with the given
// mode and padding. RC4 is a stream cipher; use the RC4 spec.
func NewBlockSpec(family Family, mode Mode, padding Padding) (CipherSpec, error) {
	s := CipherSpec{family: family, mode: mode, padding: padding}
	if err := s.validate(); err != nil {
		return CipherSpec{}, err
	}
	return s, nil
}

// NewRSASpec returns the RSA spec with the given padding. RSA always runs
// in ECB mode, one modulus-sized block per call.
func NewRSASpec(padding Padding) (CipherSpec, error) {
	s := CipherSpec{family: FamilyRSA, mode: ModeECB, padding: padding}
	if err := s.validate(); err != nil {
		return CipherSpec{}, err
	}
	return s, nil
}

func (s CipherSpec) validate() error {
	switch s.family {
	case FamilyAES, FamilyDES, FamilyDESede:
		if !slices.Contains(blockModes, s.mode) {
			return &SpecError{Spec: s.String(), Message: fmt.Sprintf("mode %q is not a %s block mode", s.mode, s.family)}
		}
		if !slices.Contains(blockPaddings, s.padding) {
			return &SpecError{Spec: s.String(), Message: fmt.Sprintf("padding %q does not apply to block ciphers", s.padding)}
		}
	case FamilyRC4:
		if s.mode != crypto.ModeNone || s.padding != crypto.PaddingNone {
			return &SpecError{Spec: s.String(), Message: "stream ciphers take no mode or padding"}
		}
	case FamilyRSA:
		if s.mode != ModeECB {
			return &SpecError{Spec: s.String(), Message: "RSA only runs in ECB mode"}
		}
		if !slices.Contains(rsaPaddings, s.padding) {
			return &SpecError{Spec: s.String(), Message: fmt.Sprintf("padding %q does not apply to RSA", s.padding)}
		}
	case FamilyPBE:
		if slices.Contains(pbeSpecs(), s) {
			return nil
		}
		return &SpecError{Spec: s.String(), Message: "unknown password-based scheme"}
	default:
		return &SpecError{Message: "zero or unknown cipher family"}
	}
	return nil
}

// Resolve maps a spec to the provider transformation that implements it.
// Password-based specs resolve to the cipher run under the derived key.
func Resolve(spec CipherSpec) (Transformation, error) {
	if err := spec.validate(); err != nil {
		return Transformation{}, err
	}

	switch spec.family {
	case FamilyPBE:
		return Transformation{Algorithm: spec.cipher, Mode: spec.mode, Padding: spec.padding}, nil
	case FamilyRC4:
		return Transformation{Algorithm: crypto.AlgorithmRC4}, nil
	}
	return Transformation{Algorithm: spec.algorithm(), Mode: spec.mode, Padding: spec.padding}, nil
}

func (s CipherSpec) algorithm() Algorithm {
	switch s.family {
	case FamilyAES:
		return crypto.AlgorithmAES
	case FamilyDES:
		return crypto.AlgorithmDES
	case FamilyDESede:
		return crypto.AlgorithmDESede
	case FamilyRC4:
		return crypto.AlgorithmRC4
	case FamilyRSA:
		return crypto.AlgorithmRSA
	case FamilyPBE:
		return s.cipher
	}
	return ""
}

// Family returns the algorithm family.
func (s CipherSpec) Family() Family { return s.family }

// Mode returns the block mode, or "" for RC4.
func (s CipherSpec) Mode() Mode { return s.mode }

// Padding returns the padding scheme, or "" for RC4.
func (s CipherSpec) Padding() Padding { return s.padding }

// Digest returns the password digest of a PBE spec, or "".
func (s CipherSpec) Digest() DigestAlgorithm { return s.digest }

// IsZero reports whether s is the zero CipherSpec.
func (s CipherSpec) IsZero() bool { return s == CipherSpec{} }

// String returns the transform name, for example "AES/CBC/PKCS5Padding".
func (s CipherSpec) String() string {
	switch s.family {
	case FamilyPBE:
		return s.name
	case FamilyRC4:
		return "RC4"
	case familyInvalid:
		return "<invalid>"
	}
	return Transformation{Algorithm: s.algorithm(), Mode: s.mode, Padding: s.padding}.String()
}

// RequiresIV reports whether callers must pass an IV to encrypt or decrypt.
// PBE specs derive their IV from the password.
func (s CipherSpec) RequiresIV() bool {
	switch s.family {
	case FamilyAES, FamilyDES, FamilyDESede:
		return s.mode.RequiresIV()
	}
	return false
}

// IVSize returns the IV length callers must supply, or 0 when s takes no
// IV.
func (s CipherSpec) IVSize() int {
	if !s.RequiresIV() {
		return 0
	}
	return crypto.BlockSize(s.algorithm())
}

// KeyKind returns the symmetric key kind the cipher spec consumes, or
// KeyKindInvalid for RSA and PBE specs.
func (s CipherSpec) KeyKind() KeyKind {
	switch s.family {
	case FamilyAES:
		return KeyAES
	case FamilyDES:
		return KeyDES
	case FamilyDESede:
		return KeyDESede
	case FamilyRC4:
		return KeyRC4
	}
	return KeyKindInvalid
}

func (s CipherSpec) symmetric() bool {
	return s.KeyKind() != KeyKindInvalid
}

func pbeSpecs() []CipherSpec {
	return []CipherSpec{PBEWithSHAAndTwofishCBC, PBEWithSHA256AndAES256CBC}
}

// CipherSpecs lists every supported spec: all block family, mode and
// padding combinations, RC4, the RSA paddings and the PBE schemes.
func CipherSpecs() []CipherSpec {
	var specs []CipherSpec
	for _, f := range []Family{FamilyAES, FamilyDES, FamilyDESede} {
		for _, m := range blockModes {
			for _, p := range blockPaddings {
				specs = append(specs, CipherSpec{family: f, mode: m, padding: p})
			}
		}
	}
	specs = append(specs, RC4)
	for _, p := range rsaPaddings {
		specs = append(specs, CipherSpec{family: FamilyRSA, mode: ModeECB, padding: p})
	}
	return append(specs, pbeSpecs()...)
}

// ParseCipherSpec looks up a spec by its transform name, ignoring case.
// "DESede" may also be written "TripleDES" or "3DES".
func ParseCipherSpec(name string) (CipherSpec, error) {
	name = strings.TrimSpace(name)
	for _, alias := range []string{"TripleDES/", "3DES/"} {
		if len(name) > len(alias) && strings.EqualFold(name[:len(alias)], alias) {
			name = "DESede/" + name[len(alias):]
		}
	}

	for _, s := range CipherSpecs() {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return CipherSpec{}, &SpecError{Spec: name, Message: "no such cipher spec"}
}
