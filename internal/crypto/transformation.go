package crypto

import "strings"

// Algorithm names a cipher algorithm.
type Algorithm string

const (
	AlgorithmAES     Algorithm = "AES"
	AlgorithmDES     Algorithm = "DES"
	AlgorithmDESede  Algorithm = "DESede"
	AlgorithmRC4     Algorithm = "RC4"
	AlgorithmRSA     Algorithm = "RSA"
	AlgorithmTwofish Algorithm = "Twofish"
)

// Mode names a block cipher mode of operation.
type Mode string

const (
	ModeNone Mode = ""
	ModeECB  Mode = "ECB"
	ModeCBC  Mode = "CBC"
	ModeCFB  Mode = "CFB"
	ModeOFB  Mode = "OFB"
	ModeCTR  Mode = "CTR"
	ModePCBC Mode = "PCBC"
)

// RequiresIV reports whether the mode consumes an IV.
func (m Mode) RequiresIV() bool {
	switch m {
	case ModeCBC, ModeCFB, ModeOFB, ModeCTR, ModePCBC:
		return true
	}
	return false
}

// streaming reports whether the mode turns the block cipher into a key
// stream, so that unpadded input of any length is accepted.
func (m Mode) streaming() bool {
	return m == ModeCFB || m == ModeOFB || m == ModeCTR
}

// Padding names a padding scheme.
type Padding string

const (
	PaddingNone       Padding = ""
	NoPadding         Padding = "NoPadding"
	PKCS5Padding      Padding = "PKCS5Padding"
	ISO10126Padding   Padding = "ISO10126Padding"
	ZeroBytePadding   Padding = "ZeroBytePadding"
	PKCS1Padding      Padding = "PKCS1Padding"
	OAEPSHA1Padding   Padding = "OAEPWithSHA-1AndMGF1Padding"
	OAEPSHA256Padding Padding = "OAEPWithSHA-256AndMGF1Padding"
)

// Transformation is the provider-facing selector for a single transform.
type Transformation struct {
	Algorithm Algorithm
	Mode      Mode
	Padding   Padding
}

// String returns the transform name, for example "AES/CBC/PKCS5Padding".
// Stream ciphers have no mode or padding and print as the bare algorithm.
func (t Transformation) String() string {
	if t.Mode == ModeNone && t.Padding == PaddingNone {
		return string(t.Algorithm)
	}
	return strings.Join([]string{string(t.Algorithm), string(t.Mode), string(t.Padding)}, "/")
}

// BlockSize returns the cipher block size in bytes, or 0 for stream and
// asymmetric algorithms.
func BlockSize(alg Algorithm) int {
	switch alg {
	case AlgorithmAES:
		return AESBlockSize
	case AlgorithmDES, AlgorithmDESede:
		return DESBlockSize
	case AlgorithmTwofish:
		return TwofishBlockSize
	}
	return 0
}
