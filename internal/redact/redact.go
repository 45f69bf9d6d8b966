package redact

import "bytes"

// Placeholder replaces every occurrence of the secret.
const Placeholder = "user"

var placeholder = []byte(Placeholder)

// Bytes replaces every non-overlapping occurrence of secret in data with
// [Placeholder] and returns the result along with the replacement count.
// An empty secret never matches. When nothing is replaced the input slice is
// returned as is.
func Bytes(data, secret []byte) ([]byte, int) {
	if len(secret) == 0 {
		return data, 0
	}
	n := bytes.Count(data, secret)
	if n == 0 {
		return data, 0
	}
	return bytes.ReplaceAll(data, secret, placeholder), n
}

// SizeDelta is the change in file size caused by n replacements of a secret
// of the given length.
func SizeDelta(secretLen, n int) int64 {
	return int64(n) * int64(len(placeholder)-secretLen)
}
