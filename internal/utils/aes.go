package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// ErrInvalidKeySize is returned when the key is not 16, 24 or 32 bytes of UTF-8.
	ErrInvalidKeySize = errors.New("aes: key must be 16, 24 or 32 bytes")
	// ErrInvalidCiphertext is returned for input that is not whole AES blocks of hex.
	ErrInvalidCiphertext = errors.New("aes: ciphertext must be hex encoded whole blocks")
	// ErrMalformedPlaintext is returned when decryption does not yield UTF-8,
	// which in practice means the key was wrong.
	ErrMalformedPlaintext = errors.New("aes: malformed UTF-8 data")
)

// Pad16 appends NUL bytes until the UTF-8 length of text is a multiple of
// the AES block size.  Aligned input is returned unchanged.
func Pad16(text string) string {
	rem := len(text) % aes.BlockSize
	if rem == 0 {
		return text
	}
	return text + string(make([]byte, aes.BlockSize-rem))
}

// EncryptAES encrypts plaintext with AES-CBC under the raw UTF-8 bytes of key
// and returns lowercase hex.  The IV is derived from the first 16 characters
// of key.  No padding scheme is applied beyond Pad16.
func EncryptAES(plaintext, key string) (string, error) {
	block, iv, err := cipherParams(key)
	if err != nil {
		return "", err
	}
	src := []byte(Pad16(plaintext))
	dst := make([]byte, len(src))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(dst, src)
	return hex.EncodeToString(dst), nil
}

// DecryptAES reverses EncryptAES and strips every trailing NUL byte, so a
// plaintext that itself ended in NULs does not survive the round trip.
func DecryptAES(cipherHex, key string) (string, error) {
	block, iv, err := cipherParams(key)
	if err != nil {
		return "", err
	}
	src, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(src)%aes.BlockSize != 0 {
		return "", ErrInvalidCiphertext
	}
	dst := make([]byte, len(src))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(dst, src)
	if !utf8.Valid(dst) {
		return "", ErrMalformedPlaintext
	}
	return string(bytes.TrimRight(dst, "\x00")), nil
}

func cipherParams(key string) (cipher.Block, []byte, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidKeySize, err)
	}
	iv, err := ivFromKey(key)
	if err != nil {
		return nil, nil, err
	}
	// A valid key always yields at least 16 bytes here.
	return block, iv[:aes.BlockSize], nil
}

// ivFromKey returns the UTF-8 bytes of the first 16 UTF-16 code units of
// key. A cut through a surrogate pair cannot be encoded and is rejected.
func ivFromKey(key string) ([]byte, error) {
	units := utf16.Encode([]rune(key))
	if len(units) > aes.BlockSize {
		units = units[:aes.BlockSize]
	}
	if last := units[len(units)-1]; utf16.IsSurrogate(rune(last)) && last < 0xdc00 {
		return nil, fmt.Errorf("%w: iv splits a surrogate pair", ErrInvalidKeySize)
	}
	return []byte(string(utf16.Decode(units))), nil
}

// AESCipher exposes EncryptAES/DecryptAES as a value that can be injected
// into services.
type AESCipher struct{}

func (AESCipher) Encrypt(plaintext, key string) (string, error) { return EncryptAES(plaintext, key) }

func (AESCipher) Decrypt(cipherHex, key string) (string, error) { return DecryptAES(cipherHex, key) }
