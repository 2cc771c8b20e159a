package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad16(t *testing.T) {
	cases := map[string]int{
		"":                  0,
		"a":                 16,
		"secret":            16,
		"0123456789abcdef":  16,
		"0123456789abcdefg": 32,
		"é":                 16, // two UTF-8 bytes
	}
	for in, want := range cases {
		got := Pad16(in)
		assert.Len(t, got, want, "input %q", in)
		assert.True(t, strings.HasPrefix(got, in))
		assert.Equal(t, "", strings.Trim(got[len(in):], "\x00"))
	}
}

func TestEncryptAES_KnownVector(t *testing.T) {
	got, err := EncryptAES("secret", "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "3920dd9e1f8011b18aeb58f7b5e7e617", got)
}

func TestEncryptAES_AES256UsesFirst16CharsAsIV(t *testing.T) {
	got, err := EncryptAES("hello world, this is 32 bytes!!!", "0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "544fff605bbb2b060d969db506736593f59a68ebcd5b28e3b03602defc0ec23e", got)
}

func TestDecryptAES_KnownVector(t *testing.T) {
	got, err := DecryptAES("3920dd9e1f8011b18aeb58f7b5e7e617", "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestAES_RoundTrip(t *testing.T) {
	keys := []string{
		"0123456789abcdef",
		"0123456789abcdef01234567",
		"0123456789abcdef0123456789abcdef",
		"ééééééééabcdefgh", // 24 bytes, 16 characters
	}
	texts := []string{"", "x", "secret", "exactly16bytes!!", "a longer sentence with spaces ~!@#$%^&*()", "héllo wörld"}
	for _, k := range keys {
		for _, p := range texts {
			enc, err := EncryptAES(p, k)
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(enc), enc)
			assert.Zero(t, len(enc)%32)
			dec, err := DecryptAES(enc, k)
			require.NoError(t, err)
			assert.Equal(t, p, dec, "key %q", k)
		}
	}
}

func TestAES_TrailingNULIsLost(t *testing.T) {
	enc, err := EncryptAES("abc\x00\x00", "0123456789abcdef")
	require.NoError(t, err)
	dec, err := DecryptAES(enc, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "abc", dec)
}

func TestAES_InvalidKeySize(t *testing.T) {
	for _, k := range []string{"", "short", "0123456789abcde", "0123456789abcdef0"} {
		_, err := EncryptAES("secret", k)
		assert.ErrorIs(t, err, ErrInvalidKeySize, "key %q", k)
		_, err = DecryptAES("3920dd9e1f8011b18aeb58f7b5e7e617", k)
		assert.ErrorIs(t, err, ErrInvalidKeySize, "key %q", k)
	}
}

func TestAES_IVCountsUTF16Units(t *testing.T) {
	// 14 ASCII + one astral character fill exactly 16 code units.
	key := "0123456789abcd😀012345"
	require.Len(t, key, 24)
	enc, err := EncryptAES("secret", key)
	require.NoError(t, err)
	dec, err := DecryptAES(enc, key)
	require.NoError(t, err)
	assert.Equal(t, "secret", dec)

	// The 16th code unit is the high half of a surrogate pair.
	split := "0123456789abcde😀01234"
	require.Len(t, split, 24)
	_, err = EncryptAES("secret", split)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	_, err = DecryptAES(enc, split)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestDecryptAES_BadCiphertext(t *testing.T) {
	_, err := DecryptAES("zz", "0123456789abcdef")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = DecryptAES("3920dd9e", "0123456789abcdef")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestAESCipher(t *testing.T) {
	var c AESCipher
	enc, err := c.Encrypt("secret", "0123456789abcdef")
	require.NoError(t, err)
	dec, err := c.Decrypt(enc, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "secret", dec)
}
