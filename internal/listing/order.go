package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type Criteria string

const (
	CriteriaNone Criteria = ""
	CriteriaName Criteria = "name"
	CriteriaSize Criteria = "size"
	CriteriaDate Criteria = "date"
)

// Order is a multiplier applied to the criteria comparison.
type Order int

const (
	Ascending  Order = 1
	Descending Order = -1
)

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// SortConfig parameterizes Compare.
type SortConfig struct {
	Criteria         Criteria
	Order            Order
	DirectoriesFirst bool
}

// DefaultSortConfig orders by name, ascending, directories first.
func DefaultSortConfig() SortConfig {
	return SortConfig{Criteria: CriteriaName, Order: Ascending, DirectoriesFirst: true}
}

// NeedsSort reports whether the server's natural order differs from the
// configured one. Sorting when it returns false is harmless.
func (c SortConfig) NeedsSort() bool {
	return c.DirectoriesFirst || c.Criteria == CriteriaSize || c.Criteria == CriteriaDate
}

func ParseCriteria(value string) (Criteria, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return CriteriaNone, nil
	case "name":
		return CriteriaName, nil
	case "size":
		return CriteriaSize, nil
	case "date":
		return CriteriaDate, nil
	default:
		return CriteriaNone, fmt.Errorf("unknown sort criteria %q", value)
	}
}

func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending", "1", "+1":
		return Ascending, nil
	case "desc", "descending", "-1":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort order %q", value)
	}
}

// Sort orders entries in place. Entries equal under every active tier keep
// their relative order.
func Sort(entries []Entry, cfg SortConfig) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return Compare(a, b, cfg)
	})
}

// Compare ranks the parent marker first, then directories when
// cfg.DirectoriesFirst is set, then applies the criteria in cfg.Order.
func Compare(a, b Entry, cfg SortConfig) int {
	ap, bp := a.parentRanked(), b.parentRanked()
	switch {
	case ap && !bp:
		return -1
	case bp && !ap:
		return 1
	}

	if cfg.DirectoriesFirst {
		ad, bd := a.IsDirectory(), b.IsDirectory()
		switch {
		case ad && !bd:
			return -1
		case bd && !ad:
			return 1
		}
	}

	order := int(cfg.Order)
	if order == 0 {
		order = int(Ascending)
	}

	switch cfg.Criteria {
	case CriteriaSize:
		return order * compareSize(a.Size, b.Size)
	case CriteriaDate:
		if a.Date == nil || b.Date == nil {
			return 0
		}
		return order * strings.Compare(*a.Date, *b.Date)
	default:
		return order * CompareNames(a, b)
	}
}

// CompareNames compares entry names ignoring case and nothing else.
func CompareNames(a, b Entry) int {
	if a.Name == b.Name {
		return 0
	}
	fold := cases.Fold()
	return strings.Compare(fold.String(a.Name), fold.String(b.Name))
}

// A missing size ranks below every reported size.
func compareSize(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}
