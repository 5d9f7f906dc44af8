package api

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// hmacKey is the fixed HMAC key used by the hex_hmac_md5 login variant.
const hmacKey = "YOU_CAN_NOT_PASS"

// hmacBlockSize is the padded password block length expected by the device.
const hmacBlockSize = 2048

// Merge interleaves two strings character by character, appending the tail
// of the longer one. This is the obfuscation step the login form's
// JavaScript applies to the password and the server-provided seed.
func Merge(a, b string) string {
	var sb strings.Builder
	sb.Grow(len(a) + len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if i < len(a) {
			sb.WriteByte(a[i])
			i++
		}
		if j < len(b) {
			sb.WriteByte(b[j])
			j++
		}
	}
	return sb.String()
}

// MergeHash returns the hex MD5 digest of the merged password and seed.
func MergeHash(password, seed string) string {
	sum := md5.Sum([]byte(Merge(password, seed)))
	return hex.EncodeToString(sum[:])
}

// HexHMACMD5 returns the HMAC-MD5 login digest: the password is repeated
// NUL-terminated to fill a 2048-byte block, then signed with the fixed key.
func HexHMACMD5(password string) string {
	repeat := hmacBlockSize / (len(password) + 1)
	remaining := hmacBlockSize - repeat*(len(password)+1)

	var sb strings.Builder
	sb.Grow(hmacBlockSize)
	for i := 0; i < repeat; i++ {
		sb.WriteString(password)
		sb.WriteByte(0)
	}
	for i := 0; i < remaining; i++ {
		sb.WriteByte(0)
	}

	mac := hmac.New(md5.New, []byte(hmacKey))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
