package booking

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// codeDateLayout is the date component of a reservation code, e.g.
// REZ20250601-427.
const codeDateLayout = "20060102"

// GenerateCode builds a reservation code from the generation instant:
// "REZ" + the date as YYYYMMDD + a dash + the last three digits of the
// unix millisecond clock, zero padded.  The timestamp suffix keeps codes
// monotonic within a session and auditable against the clock, but it is
// not guaranteed unique; callers that persist codes should go through
// UniqueCode instead.
func GenerateCode(now time.Time) string {
	return fmt.Sprintf("REZ%s-%03d", now.UTC().Format(codeDateLayout), now.UnixMilli()%1000)
}

// UniqueCode returns a code that does not collide with any reservation
// already in the store.  It starts from the timestamp-suffix code and,
// on collision, retries a bounded number of times with a random
// three-digit suffix.  If every attempt collides the last candidate is
// returned anyway; Store.Add will still reject it with ErrDuplicateCode
// rather than silently storing a duplicate.
func UniqueCode(ctx context.Context, store Store, now time.Time) (string, error) {
	code := GenerateCode(now)
	for attempt := 0; attempt < 10; attempt++ {
		exists, err := store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		n, err := rand.Int(rand.Reader, big.NewInt(1000))
		if err != nil {
			return "", err
		}
		code = fmt.Sprintf("REZ%s-%03d", now.UTC().Format(codeDateLayout), n.Int64())
	}
	return code, nil
}
