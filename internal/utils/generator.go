package utils

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"io"
	mrand "math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// GenerateGUID returns a v4-shaped GUID drawn from math/rand.  The result is
// not suitable as a secret.
func GenerateGUID() string {
	id, err := uuid.NewRandomFromReader(weakReader{})
	if err != nil {
		// weakReader never fails
		panic(err)
	}
	return id.String()
}

// weakReader fills buffers from the shared math/rand/v2 source, which is
// safe for concurrent use.
type weakReader struct{}

var _ io.Reader = weakReader{}

func (weakReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := mrand.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// GenerateSalt returns 16 random bytes as 32 lowercase hex characters.
func GenerateSalt() (string, error) { return randomHex(16) }

// GenerateKey returns 8 random bytes as 16 lowercase hex characters, half
// the size of a salt.
func GenerateKey() (string, error) { return randomHex(8) }

// GenerateSign signs a request: params are rendered as key=value pairs joined
// by '&' in their iteration order, salt and the decimal timestamp are
// appended without separators, and the MD5 digest of the result is returned
// as hex.
func GenerateSign(params SignParams, salt string, timestamp float64) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	b.WriteString(salt)
	b.WriteString(FormatJSNumber(timestamp))
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
