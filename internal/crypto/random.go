package crypto

import (
	"crypto/rand"
	"io"
	"math/big"
)

// randInt returns a uniform value in [0, max).
func randInt(r io.Reader, max *big.Int) (*big.Int, error) {
	return rand.Int(r, max)
}
