package catalog

import (
	"bytes"
	"crypto/des"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/tessro/tapedeck/internal/core"
)

// mediaKey is the fixed DES key the provider obfuscates media URLs with.
const mediaKey = "38346591"

var bitrateSuffix = regexp.MustCompile(`_(160|96|48|12)\.`)

var (
	errEmptyToken = errors.New("empty media token")
	errBadPadding = errors.New("invalid padding")
)

// DecryptMediaURL reverses the provider's media URL obfuscation:
// base64, then DES-ECB with PKCS7 padding.
func DecryptMediaURL(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyToken
	}

	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}

	block, err := des.NewCipher([]byte(mediaKey))
	if err != nil {
		return "", err
	}
	bs := block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return "", errors.New("ciphertext is not a multiple of the block size")
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		block.Decrypt(out[i:i+bs], data[i:i+bs])
	}
	return unpad(out, bs)
}

func unpad(b []byte, bs int) (string, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > bs || n > len(b) {
		return "", errBadPadding
	}
	if !bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return "", errBadPadding
	}
	return string(b[:len(b)-n]), nil
}

// HighestBitrate rewrites a decrypted URL to request the 320 kbps rendition.
func HighestBitrate(u string) string {
	return bitrateSuffix.ReplaceAllString(u, "_320.")
}

// ResolveStreamURL returns the playable URL of song, or "" when it has no
// media token or the token cannot be decrypted. It is a pure function of
// the song's token.
func ResolveStreamURL(song core.Song) string {
	u, err := DecryptMediaURL(song.EncryptedMediaURL)
	if err != nil {
		return ""
	}
	return HighestBitrate(u)
}
