// Package common holds small helpers shared by the client and CLI.
package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it on buffers that held a password once they are no longer needed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// TrimLineEnding drops one trailing "\n" or "\r\n" from b without copying.
func TrimLineEnding(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}
