package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanumericUpper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandAlphanumeric returns n characters drawn uniformly from A-Z and 0-9
func RandAlphanumeric(n int) string {
	result := make([]byte, n)
	size := big.NewInt(int64(len(alphanumericUpper)))
	for i := range result {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			panic(err)
		}
		result[i] = alphanumericUpper[idx.Int64()]
	}
	return string(result)
}
