package pkg

import (
	"crypto/rand"
	"errors"
	"math/big"
	"unsafe"
)

const randStringCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// GenerateRandomString returns a securely generated random
// alphanumeric string of exactly n characters.
func GenerateRandomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random string length must be positive")
	}

	charsetLen := big.NewInt(int64(len(randStringCharset)))
	b := make([]byte, n)
	for i := range b {
		randIdx, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		b[i] = randStringCharset[randIdx.Int64()]
	}

	return BytesToString(b), nil
}
