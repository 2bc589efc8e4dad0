// Package classcode generates and validates classroom join codes.
//
// A code is two uppercase ASCII letters followed by four decimal digits
// (e.g. "AB1234"), giving 26×26×10000 possibilities. Uniqueness is the
// caller's concern: GenerateUnique delegates the existence check and only
// bounds the number of attempts.
package classcode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// DefaultMaxAttempts bounds GenerateUnique. Exhaustion is a retryable
	// server-side failure, not a guarantee the space is full.
	DefaultMaxAttempts = 20
)

var codePattern = regexp.MustCompile(`^[A-Z]{2}\d{4}$`)

// ErrExhaustedAttempts is returned when no unique code was found within the
// attempt budget.
var ErrExhaustedAttempts = errors.New("exhausted attempts generating unique classroom code")

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Normalize trims surrounding whitespace and uppercases the input. Always
// applied before validation or storage.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValid reports whether code matches the LLDDDD format. It does not
// normalize; callers pass Normalize(code) when the input is user-typed.
func IsValid(code string) bool {
	return codePattern.MatchString(code)
}

// Generate returns a random code drawn uniformly from the code space.
func Generate() string {
	return fmt.Sprintf("%c%c%04d", letters[randInt(26)], letters[randInt(26)], randInt(10000))
}

// GenerateUnique draws candidates until exists reports false for one, or the
// attempt budget runs out. maxAttempts <= 0 selects DefaultMaxAttempts.
// Errors from exists propagate immediately.
func GenerateUnique(ctx context.Context, exists ExistsFunc, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for i := 0; i < maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code := Generate()
		if !IsValid(code) {
			continue
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("classroom code exists check: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhaustedAttempts
}

func randInt(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		// fallback: codes are not secrets, nanoseconds beat aborting
		return time.Now().UnixNano() % n
	}
	return v.Int64()
}
