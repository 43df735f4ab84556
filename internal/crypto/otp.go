package crypto

import (
	"crypto/rand"
	"errors"
)

// OTPLength is the number of digits in a generated one-time code.
const OTPLength = 6

// GenerateOTP returns an n-digit numeric one-time code.
func GenerateOTP(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid code length")
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = '0' + (buf[i] % 10)
	}

	return string(buf), nil
}
