package normalize

import "strings"

const (
	// DefaultRoot is the root sentinel for Unix-style servers.
	DefaultRoot = "/"
	// WindowsRoot is the root sentinel for servers that list drives at the top level.
	WindowsRoot = ""

	fileScheme = "file:///"
)

// Normalizer canonicalizes remote path strings. Root is returned whenever
// a path resolves to nothing.
type Normalizer struct {
	Root string
}

func New(root string) Normalizer {
	return Normalizer{Root: root}
}

// Unix returns a Normalizer using DefaultRoot.
func Unix() Normalizer {
	return Normalizer{Root: DefaultRoot}
}

// Normalize resolves ".." segments and collapses runs of '/' and '\' into a
// single '/'. A leading separator is kept so absolute paths stay absolute.
func (n Normalizer) Normalize(path string) string {
	segments := splitSegments(path)
	stack := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == ".." {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		stack = append(stack, segment)
	}

	out := strings.Join(stack, "/")
	if out == "" {
		return n.Root
	}
	return out
}

// NormalizeParent normalizes the path one level above path.
func (n Normalizer) NormalizeParent(path string) string {
	return n.Normalize(path + "/..")
}

// BaseName returns the last element of path. A file:/// prefix is never
// treated as containing the separator.
func BaseName(path string) string {
	offset := 0
	if strings.HasPrefix(path, fileScheme) {
		offset = len(fileScheme)
	}
	idx := strings.LastIndexAny(path[offset:], `/\`)
	if idx == -1 {
		return path[offset:]
	}
	return path[offset+idx+1:]
}

// splitSegments splits on runs of separators. Trailing empty segments are
// dropped; a leading one marks an absolute path and is kept.
func splitSegments(path string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(path); i++ {
		if !isSeparator(path[i]) {
			continue
		}
		segments = append(segments, path[start:i])
		for i+1 < len(path) && isSeparator(path[i+1]) {
			i++
		}
		start = i + 1
	}
	segments = append(segments, path[start:])

	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}
