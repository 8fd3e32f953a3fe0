package browse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dirview/dirview/internal/listing"
	"github.com/dirview/dirview/internal/logging"
	"github.com/dirview/dirview/internal/normalize"
)

// Result is a sorted listing annotated with its inferred path.
type Result struct {
	Path      string            `json:"path"`
	Inference listing.Inference `json:"inference"`
	Criteria  listing.Criteria  `json:"criteria,omitempty"`
	Order     string            `json:"order"`
	DirsFirst bool              `json:"directories_first"`
	Entries   []listing.Entry   `json:"entries"`
}

// Process sorts entries in place and infers the current directory.
func Process(entries []listing.Entry, cfg listing.SortConfig, n normalize.Normalizer) Result {
	l := listing.New(entries, cfg)
	l.Order()
	inferred := listing.Explain(l.Entries, n)

	if l.Entries == nil {
		l.Entries = []listing.Entry{}
	}
	return Result{
		Path:      inferred.Path,
		Inference: inferred.By,
		Criteria:  cfg.Criteria,
		Order:     cfg.Order.String(),
		DirsFirst: cfg.DirectoriesFirst,
		Entries:   l.Entries,
	}
}

// Annotate copies the outcome of the processed listing into event.
func (res Result) Annotate(event *logging.Event) {
	event.Path = res.Path
	event.Inference = string(res.Inference)
	event.Criteria = string(res.Criteria)
	event.Order = res.Order
	event.DirsFirst = res.DirsFirst
	event.Entries = len(res.Entries)
	for _, e := range res.Entries {
		if e.IsParent() {
			event.HasParent = true
		}
		if e.IsDirectory() {
			event.Dirs++
		}
	}
}

func RenderJSON(res Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

func RenderText(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path: %s (%s)\n", displayPath(res.Path), res.Inference)
	for _, e := range res.Entries {
		kind := "-"
		if e.IsDirectory() {
			kind = "d"
		}
		size := ""
		if e.Size != nil {
			size = fmt.Sprintf("%d", *e.Size)
		}
		date := ""
		if e.Date != nil {
			date = *e.Date
		}
		fmt.Fprintf(&b, "%s %12s %-25s %s\n", kind, size, date, e.Name)
	}
	return b.String()
}

func displayPath(path string) string {
	if path == "" {
		return "(drives)"
	}
	return path
}
