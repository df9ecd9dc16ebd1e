package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateRandomToken returns a random alphanumeric string, used as a
// throwaway signing secret when none is configured.
func GenerateRandomToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	limit := big.NewInt(int64(len(charset)))

	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		token[i] = charset[n.Int64()]
	}
	return string(token)
}
