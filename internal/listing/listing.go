package listing

import (
	"strings"

	"github.com/dirview/dirview/internal/normalize"
)

// Listing is the ordered contents of one browse response together with the
// sort configuration last applied to it.
type Listing struct {
	Entries []Entry
	Sort    SortConfig
}

func New(entries []Entry, cfg SortConfig) *Listing {
	return &Listing{Entries: entries, Sort: cfg}
}

// Order sorts the entries in place using the listing's configuration.
func (l *Listing) Order() {
	Sort(l.Entries, l.Sort)
}

// CurrentPath infers the path of the directory the entries belong to.
func (l *Listing) CurrentPath(n normalize.Normalizer) string {
	return InferCurrentPath(l.Entries, n)
}

// Inference names the rule that decided the current path.
type Inference string

const (
	InferenceEmpty    Inference = "empty"
	InferenceParent   Inference = "parent"
	InferenceSingle   Inference = "single"
	InferenceSiblings Inference = "siblings"
	InferenceConflict Inference = "conflict"
)

// InferenceResult is the inferred path and the evidence behind it.
type InferenceResult struct {
	Path string
	By   Inference
}

func InferCurrentPath(entries []Entry, n normalize.Normalizer) string {
	return Explain(entries, n).Path
}

// Explain scans the entries once. A parent marker carrying a path wins
// outright; otherwise every non-parent entry must agree on its parent
// directory, and the first disagreement yields the root.
func Explain(entries []Entry, n normalize.Normalizer) InferenceResult {
	var first string
	seen := 0

	for _, e := range entries {
		if e.IsParent() {
			if e.IsDirectory() && e.Path != nil && strings.HasSuffix(*e.Path, ParentName) {
				trimmed := strings.TrimSuffix(*e.Path, ParentName)
				return InferenceResult{Path: n.Normalize(trimmed), By: InferenceParent}
			}
			continue
		}
		if e.Path == nil {
			continue
		}

		candidate := n.NormalizeParent(*e.Path)
		seen++
		if seen == 1 {
			first = candidate
			continue
		}
		if candidate != first {
			return InferenceResult{Path: n.Root, By: InferenceConflict}
		}
	}

	switch seen {
	case 0:
		return InferenceResult{Path: n.Root, By: InferenceEmpty}
	case 1:
		return InferenceResult{Path: first, By: InferenceSingle}
	default:
		return InferenceResult{Path: first, By: InferenceSiblings}
	}
}
