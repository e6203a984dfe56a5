package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const Digits = "0123456789"

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}

func RandomDigits(length int) (string, error) {
	return RandomString(length, Digits)
}
