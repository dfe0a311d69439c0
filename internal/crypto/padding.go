package crypto

import (
	"fmt"
	"io"
)

// padder adds and removes block padding.
type padder interface {
	pad(data []byte, blockSize int, r io.Reader) ([]byte, error)
	unpad(data []byte, blockSize int) ([]byte, error)
}

func paddingFor(p Padding) (padder, error) {
	switch p {
	case NoPadding:
		return noPadding{}, nil
	case PKCS5Padding:
		return pkcs5Padding{}, nil
	case ISO10126Padding:
		return iso10126Padding{}, nil
	case ZeroBytePadding:
		return zeroBytePadding{}, nil
	}
	return nil, fmt.Errorf("%w: block padding %q", ErrUnsupportedAlgorithm, p)
}

type noPadding struct{}

func (noPadding) pad(data []byte, _ int, _ io.Reader) ([]byte, error) { return data, nil }
func (noPadding) unpad(data []byte, _ int) ([]byte, error)            { return data, nil }

// pkcs5Padding appends n bytes of value n (PKCS#7 generalised to any block size).
type pkcs5Padding struct{}

func (pkcs5Padding) pad(data []byte, blockSize int, _ io.Reader) ([]byte, error) {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out, nil
}

func (pkcs5Padding) unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}

// iso10126Padding appends n-1 random bytes followed by the count n.
type iso10126Padding struct{}

func (iso10126Padding) pad(data []byte, blockSize int, r io.Reader) ([]byte, error) {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	if _, err := io.ReadFull(r, out[len(data):len(out)-1]); err != nil {
		return nil, fmt.Errorf("failed to generate padding: %w", err)
	}
	out[len(out)-1] = byte(n)
	return out, nil
}

func (iso10126Padding) unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	return data[:len(data)-n], nil
}

// zeroBytePadding fills the last block with zero bytes. Already aligned
// input, including empty input, is left as is.
type zeroBytePadding struct{}

func (zeroBytePadding) pad(data []byte, blockSize int, _ io.Reader) ([]byte, error) {
	rem := len(data) % blockSize
	if rem == 0 {
		return data, nil
	}
	out := make([]byte, len(data)+blockSize-rem)
	copy(out, data)
	return out, nil
}

func (zeroBytePadding) unpad(data []byte, _ int) ([]byte, error) {
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return data[:end], nil
}
