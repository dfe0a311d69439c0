package crypto

import (
	"fmt"
	"math/big"

	bstd "github.com/deneonet/benc/std"
)

const (
	dhKeyVersion = 1

	dhPublicTag  byte = 'P'
	dhPrivateTag byte = 'S'
)

var bigOne = big.NewInt(1)

// DHParams are finite-field Diffie-Hellman domain parameters. Both parties
// of an agreement must use the same values.
type DHParams struct {
	// P is the prime modulus.
	P *big.Int
	// G is the base generator.
	G *big.Int
	// L is the private value length in bits, or 0 to draw from [2, P-2].
	// A non-zero L must be at least DHMinPrivateBits.
	L int
}

// Equal reports whether two parameter sets describe the same group.
func (d *DHParams) Equal(o *DHParams) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.P.Cmp(o.P) == 0 && d.G.Cmp(o.G) == 0
}

func (d *DHParams) validate() error {
	if d == nil || d.P == nil || d.G == nil {
		return fmt.Errorf("%w: missing DH parameters", ErrInvalidKeyEncoding)
	}
	if d.P.BitLen() < DHMinBits || d.P.BitLen() > DHMaxBits {
		return fmt.Errorf("%w: DH prime of %d bits", ErrInvalidKeyPairSize, d.P.BitLen())
	}
	if d.G.Cmp(bigOne) <= 0 || d.G.Cmp(d.P) >= 0 {
		return fmt.Errorf("%w: DH generator out of range", ErrInvalidKeyEncoding)
	}
	if d.L < 0 || d.L >= d.P.BitLen() || (d.L != 0 && d.L < DHMinPrivateBits) {
		return fmt.Errorf("%w: DH private value length %d", ErrInvalidKeyEncoding, d.L)
	}
	return nil
}

func (p *Default) generateDHKeyPair(params *DHParams) (*KeyPair, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	x, err := p.dhPrivateValue(params)
	if err != nil {
		return nil, err
	}
	y := new(big.Int).Exp(params.G, x, params.P)

	return &KeyPair{
		Algorithm:  KeyPairDH,
		PublicKey:  marshalDHKey(dhPublicTag, params, y),
		PrivateKey: marshalDHKey(dhPrivateTag, params, x),
	}, nil
}

func (p *Default) dhPrivateValue(params *DHParams) (*big.Int, error) {
	if params.L > 0 {
		// L random bits with the top bit set.
		max := new(big.Int).Lsh(bigOne, uint(params.L-1))
		x, err := randInt(p.reader(), max)
		if err != nil {
			return nil, err
		}
		return x.Add(x, max), nil
	}

	// x in [2, p-2]
	max := new(big.Int).Sub(params.P, big.NewInt(3))
	x, err := randInt(p.reader(), max)
	if err != nil {
		return nil, err
	}
	return x.Add(x, big.NewInt(2)), nil
}

func agreeDH(privateKey, peerPublicKey []byte) ([]byte, error) {
	privParams, x, err := unmarshalDHKey(dhPrivateTag, privateKey)
	if err != nil {
		return nil, err
	}
	pubParams, y, err := unmarshalDHKey(dhPublicTag, peerPublicKey)
	if err != nil {
		return nil, err
	}
	if !privParams.Equal(pubParams) {
		return nil, ErrParamsMismatch
	}

	// Reject y outside [2, p-2]; those force a trivial shared value.
	pMinus1 := new(big.Int).Sub(pubParams.P, bigOne)
	if y.Cmp(bigOne) <= 0 || y.Cmp(pMinus1) >= 0 {
		return nil, fmt.Errorf("%w: peer public value out of range", ErrAgreementFailed)
	}

	z := new(big.Int).Exp(y, x, privParams.P)
	return z.FillBytes(make([]byte, (privParams.P.BitLen()+7)/8)), nil
}

// DHParamsFromKey extracts the domain parameters from an encoded public or
// private Diffie-Hellman key.
func DHParamsFromKey(encoded []byte) (*DHParams, error) {
	if len(encoded) <= bstd.SizeUint16()+bstd.SizeByte() {
		return nil, ErrInvalidKeyEncoding
	}
	_, tag, err := bstd.UnmarshalByte(bstd.SizeUint16(), encoded)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	params, _, err := unmarshalDHKey(tag, encoded)
	return params, err
}

// ParseDHKey checks that encoded is a Diffie-Hellman public (or private)
// key and returns its domain parameters.
func ParseDHKey(encoded []byte, public bool) (*DHParams, error) {
	tag := dhPrivateTag
	if public {
		tag = dhPublicTag
	}
	params, _, err := unmarshalDHKey(tag, encoded)
	return params, err
}

func marshalDHKey(tag byte, params *DHParams, value *big.Int) []byte {
	pBytes := params.P.Bytes()
	gBytes := params.G.Bytes()
	vBytes := value.Bytes()

	bufSize := bstd.SizeUint16() + bstd.SizeByte() + bstd.SizeBytes(pBytes) + bstd.SizeBytes(gBytes) +
		bstd.SizeUint32() + bstd.SizeBytes(vBytes)
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, dhKeyVersion)
	ofs = bstd.MarshalByte(ofs, buf, tag)
	ofs = bstd.MarshalBytes(ofs, buf, pBytes)
	ofs = bstd.MarshalBytes(ofs, buf, gBytes)
	ofs = bstd.MarshalUint32(ofs, buf, uint32(params.L))
	_ = bstd.MarshalBytes(ofs, buf, vBytes)

	return buf
}

func unmarshalDHKey(wantTag byte, buf []byte) (*DHParams, *big.Int, error) {
	if len(buf) <= bstd.SizeUint16() {
		return nil, nil, ErrInvalidKeyEncoding
	}

	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil || version != dhKeyVersion {
		return nil, nil, fmt.Errorf("%w: unsupported DH key version", ErrInvalidKeyEncoding)
	}

	var (
		tag            byte
		pBytes, gBytes []byte
		l              uint32
		vBytes         []byte
	)
	if ofs, tag, err = bstd.UnmarshalByte(ofs, buf); err != nil {
		return nil, nil, ErrInvalidKeyEncoding
	}
	if tag != wantTag {
		return nil, nil, fmt.Errorf("%w: wrong DH key type", ErrInvalidKeyEncoding)
	}
	if ofs, pBytes, err = bstd.UnmarshalBytesCopied(ofs, buf); err != nil {
		return nil, nil, ErrInvalidKeyEncoding
	}
	if ofs, gBytes, err = bstd.UnmarshalBytesCopied(ofs, buf); err != nil {
		return nil, nil, ErrInvalidKeyEncoding
	}
	if ofs, l, err = bstd.UnmarshalUint32(ofs, buf); err != nil {
		return nil, nil, ErrInvalidKeyEncoding
	}
	if ofs, vBytes, err = bstd.UnmarshalBytesCopied(ofs, buf); err != nil {
		return nil, nil, ErrInvalidKeyEncoding
	}
	if ofs != len(buf) {
		return nil, nil, ErrInvalidKeyEncoding
	}

	params := &DHParams{
		P: new(big.Int).SetBytes(pBytes),
		G: new(big.Int).SetBytes(gBytes),
		L: int(l),
	}
	if err := params.validate(); err != nil {
		return nil, nil, err
	}
	return params, new(big.Int).SetBytes(vBytes), nil
}
