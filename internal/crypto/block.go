package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"fmt"

	"golang.org/x/crypto/twofish"
)

// newBlock creates the block cipher for alg.
func newBlock(alg Algorithm, key []byte) (cipher.Block, error) {
	switch alg {
	case AlgorithmAES:
		switch len(key) {
		case 16, 24, 32:
		default:
			return nil, fmt.Errorf("%w: got %d, want 16, 24 or 32", ErrInvalidKeySize, len(key))
		}
		return aes.NewCipher(key)
	case AlgorithmDES:
		if len(key) != DESKeySize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), DESKeySize)
		}
		return des.NewCipher(key)
	case AlgorithmDESede:
		if len(key) != DESedeKeySize {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), DESedeKeySize)
		}
		return des.NewTripleDESCipher(key)
	case AlgorithmTwofish:
		switch len(key) {
		case 16, 24, 32:
		default:
			return nil, fmt.Errorf("%w: got %d, want 16, 24 or 32", ErrInvalidKeySize, len(key))
		}
		return twofish.NewCipher(key)
	}
	return nil, fmt.Errorf("%w: block cipher %q", ErrUnsupportedAlgorithm, alg)
}

// transformBlock pads, chains and encrypts (or the reverse) with a block cipher.
func (p *Default) transformBlock(t Transformation, key, iv []byte, dir Direction, input []byte) ([]byte, error) {
	block, err := newBlock(t.Algorithm, key)
	if err != nil {
		return nil, err
	}

	bs := block.BlockSize()
	if t.Mode.RequiresIV() {
		if len(iv) != bs {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), bs)
		}
	} else if len(iv) != 0 {
		return nil, fmt.Errorf("%w: %s mode takes no IV", ErrInvalidIVSize, t.Mode)
	}

	pad, err := paddingFor(t.Padding)
	if err != nil {
		return nil, err
	}

	// Padded stream modes still process whole blocks, matching the usual
	// provider behaviour for "DES/CFB/PKCS5Padding" and friends.
	aligned := !(t.Mode.streaming() && t.Padding == NoPadding)

	if dir == Encrypt {
		data, err := pad.pad(input, bs, p.reader())
		if err != nil {
			return nil, err
		}
		if aligned && len(data)%bs != 0 {
			return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBlockLength, len(data))
		}
		return encryptMode(t.Mode, block, iv, data)
	}

	if aligned && len(input)%bs != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBlockLength, len(input))
	}
	out, err := decryptMode(t.Mode, block, iv, input)
	if err != nil {
		return nil, err
	}
	return pad.unpad(out, bs)
}

// transformRC4 XORs input with the RC4 key stream. Encryption and
// decryption are the same operation.
func transformRC4(key, input []byte) ([]byte, error) {
	if len(key) < RC4MinKeySize || len(key) > RC4MaxKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d..%d", ErrInvalidKeySize, len(key), RC4MinKeySize, RC4MaxKeySize)
	}

	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, len(input))
	c.XORKeyStream(out, input)
	return out, nil
}
