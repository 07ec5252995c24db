package verifier

import (
	"crypto/sha256"
	"encoding/hex"

	crerr "github.com/cockroachdb/errors"
)

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errVerifierTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
