package attendance

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewConfirmationCode returns six random base-36 characters, a dash and
// the last six base-36 digits of the current Unix millisecond.
func NewConfirmationCode(now time.Time) string {
	return randomToken(6) + "-" + lastN(strconv.FormatInt(now.UnixMilli(), 36), 6)
}

// saltedConfirmationCode is used once regular codes keep colliding. The
// nanosecond suffix makes a repeat practically impossible.
func saltedConfirmationCode(now time.Time) string {
	return randomToken(4) + "-" + lastN(strconv.FormatInt(now.UnixNano(), 36), 10)
}

func randomToken(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b.WriteByte(codeAlphabet[idx.Int64()])
	}
	return b.String()
}

func lastN(s string, n int) string {
	s = strings.ToUpper(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
