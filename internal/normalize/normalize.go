package normalize

import (
	"net/url"
	"strings"
)

const defaultDecodeDepth = 2

// Decode percent-decodes a browse URI, repeating up to depth times for
// servers that double-encode. It stops at the first invalid escape.
func Decode(input string, depth int) string {
	if depth <= 0 {
		depth = defaultDecodeDepth
	}

	decoded := input
	for i := 0; i < depth; i++ {
		next, ok := decodeOnce(decoded)
		if !ok || next == decoded {
			break
		}
		decoded = next
	}
	return decoded
}

// PathFromURI turns a file:// URI into the path the server reports for the
// same entry. Non-file URIs are returned decoded but otherwise untouched.
func PathFromURI(uri string) string {
	decoded := Decode(uri, 1)
	if !strings.HasPrefix(decoded, "file://") {
		return decoded
	}
	rest := strings.TrimPrefix(decoded, "file://")
	// file:///C:/x is a Windows drive path, file:///x a Unix one.
	if len(rest) >= 3 && rest[0] == '/' && rest[2] == ':' {
		return rest[1:]
	}
	return rest
}

func decodeOnce(input string) (string, bool) {
	decoded, err := url.PathUnescape(input)
	if err != nil {
		return input, false
	}
	return decoded, true
}
