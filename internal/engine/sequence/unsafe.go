package sequence

import "unsafe"

// stringBytes converts a string to []byte without copying.
// The returned slice shares memory with s and MUST NOT be modified.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
