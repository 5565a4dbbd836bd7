package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// BookingCodePrefix is prepended to every generated booking code.
const BookingCodePrefix = "RP-"

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// NewBookingCode produces a short human-readable booking code: the
// constant prefix followed by six characters drawn independently and
// uniformly from a 32-character alphabet. Codes are not unique by
// construction; the booking store retries on collision.
func NewBookingCode() (string, error) {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return BookingCodePrefix + string(buf), nil
}

// NewOTP returns a 6-digit numeric one-time code in [100000, 999999].
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
