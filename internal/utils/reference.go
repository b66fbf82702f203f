package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const refAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateOrderNumber returns a human-readable order number derived from
// the current time. Uniqueness is enforced by the orders table constraint;
// callers retry on conflict.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ES%d", time.Now().UnixMilli())
}

// GeneratePaymentRef returns the reference handed to the payment provider
// and used to correlate its webhook back to the order.
func GeneratePaymentRef() string {
	return fmt.Sprintf("PAY_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

func randomSuffix(length int) string {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(refAlphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// fallback: time-based entropy
			n = big.NewInt(time.Now().UnixNano() % int64(len(refAlphabet)))
		}
		buf[i] = refAlphabet[n.Int64()]
	}

	return string(buf)
}
