package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	n := GenerateOrderNumber()
	assert.Regexp(t, regexp.MustCompile(`^ES\d{13,}$`), n)
}

func TestGeneratePaymentRef(t *testing.T) {
	ref := GeneratePaymentRef()
	assert.Regexp(t, regexp.MustCompile(`^PAY_\d{13,}_[a-z0-9]{9}$`), ref)

	// Random suffix keeps two refs from the same millisecond apart.
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r := GeneratePaymentRef()
		assert.False(t, seen[r], "duplicate reference %s", r)
		seen[r] = true
	}
}
