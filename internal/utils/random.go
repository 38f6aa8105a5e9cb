package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SigningTokenLength is the length of the opaque tokens embedded in
// signing links. Long enough that guessing is not a practical concern.
const SigningTokenLength = 43

func RandomString(length int) string {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}

// RandomNumericString generates a random string containing only digits.
func RandomNumericString(length int) string {
	const digits = "0123456789"
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			panic(err)
		}
		b[i] = digits[num.Int64()]
	}
	return string(b)
}

// NewSigningToken mints a URL-safe token for a signature-request link.
func NewSigningToken() (string, error) {
	return gonanoid.New(SigningTokenLength)
}
