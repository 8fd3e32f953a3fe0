package listing

import "strings"

const (
	// TypeDirectory is reported by older media servers.
	TypeDirectory = "directory"
	// TypeDir is reported by newer media servers.
	TypeDir = "dir"
	// TypeFile is the tag for plain files.
	TypeFile = "file"

	// ParentName marks the synthetic "go up one level" entry.
	ParentName = ".."
)

// Entry is one record of a browse listing. Optional fields are nil when the
// server did not report them.
type Entry struct {
	Type      string  `json:"type"`
	Size      *int64  `json:"size,omitempty"`
	Date      *string `json:"date,omitempty"`
	Path      *string `json:"path,omitempty"`
	Name      string  `json:"name"`
	Extension *string `json:"extension,omitempty"`
}

func (e Entry) IsDirectory() bool {
	return e.Type == TypeDirectory || e.Type == TypeDir
}

// IsParent reports whether the entry is the parent marker.
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// parentRanked entries always sort ahead of everything else.
func (e Entry) parentRanked() bool {
	return e.IsDirectory() && e.IsParent()
}

// Ext returns the explicit extension, or the suffix after the last '.' in
// the path when none was reported.
func (e Entry) Ext() (string, bool) {
	if e.Extension != nil {
		return *e.Extension, true
	}
	if e.Path == nil {
		return "", false
	}
	idx := strings.LastIndexByte(*e.Path, '.')
	if idx == -1 {
		return "", false
	}
	return (*e.Path)[idx+1:], true
}

// WithExtension fills Extension from the path if it is unset.
func (e Entry) WithExtension() Entry {
	if e.Extension != nil {
		return e
	}
	if ext, ok := e.Ext(); ok {
		e.Extension = &ext
	}
	return e
}
