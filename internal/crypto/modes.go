package crypto

import (
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
)

// encryptMode applies the chaining mode to already padded data.
func encryptMode(mode Mode, block cipher.Block, iv, src []byte) ([]byte, error) {
	dst := make([]byte, len(src))
	bs := block.BlockSize()

	switch mode {
	case ModeECB:
		for i := 0; i < len(src); i += bs {
			block.Encrypt(dst[i:i+bs], src[i:i+bs])
		}
	case ModeCBC:
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(dst, src)
	case ModePCBC:
		// PCBC feeds plaintext XOR ciphertext of each block into the next.
		chain := make([]byte, bs)
		copy(chain, iv)
		tmp := make([]byte, bs)
		for i := 0; i < len(src); i += bs {
			subtle.XORBytes(tmp, src[i:i+bs], chain)
			block.Encrypt(dst[i:i+bs], tmp)
			subtle.XORBytes(chain, src[i:i+bs], dst[i:i+bs])
		}
	case ModeCFB:
		cipher.NewCFBEncrypter(block, iv).XORKeyStream(dst, src)
	case ModeOFB:
		cipher.NewOFB(block, iv).XORKeyStream(dst, src)
	case ModeCTR:
		cipher.NewCTR(block, iv).XORKeyStream(dst, src)
	default:
		return nil, fmt.Errorf("%w: mode %q", ErrUnsupportedAlgorithm, mode)
	}

	return dst, nil
}

// decryptMode reverses encryptMode. Padding is left in place.
func decryptMode(mode Mode, block cipher.Block, iv, src []byte) ([]byte, error) {
	dst := make([]byte, len(src))
	bs := block.BlockSize()

	switch mode {
	case ModeECB:
		for i := 0; i < len(src); i += bs {
			block.Decrypt(dst[i:i+bs], src[i:i+bs])
		}
	case ModeCBC:
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(dst, src)
	case ModePCBC:
		chain := make([]byte, bs)
		copy(chain, iv)
		for i := 0; i < len(src); i += bs {
			block.Decrypt(dst[i:i+bs], src[i:i+bs])
			subtle.XORBytes(dst[i:i+bs], dst[i:i+bs], chain)
			subtle.XORBytes(chain, dst[i:i+bs], src[i:i+bs])
		}
	case ModeCFB:
		cipher.NewCFBDecrypter(block, iv).XORKeyStream(dst, src)
	case ModeOFB:
		cipher.NewOFB(block, iv).XORKeyStream(dst, src)
	case ModeCTR:
		cipher.NewCTR(block, iv).XORKeyStream(dst, src)
	default:
		return nil, fmt.Errorf("%w: mode %q", ErrUnsupportedAlgorithm, mode)
	}

	return dst, nil
}
