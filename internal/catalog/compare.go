package catalog

import (
	"context"
	"fmt"
	"strings"
)

const (
	minCompare = 2
	maxCompare = 4
)

// Comparison is a side-by-side view of a few machines. Highlights maps a
// criterion to the id of the winning machine; a criterion nobody qualifies
// for is omitted.
type Comparison struct {
	Items      []Equipment       `json:"items"`
	Highlights map[string]string `json:"highlights"`
}

const (
	HighlightPower     = "highest_power"
	HighlightPrice     = "lowest_price"
	HighlightBedArea   = "largest_bed_area"
	HighlightThickness = "thickest_cut"
)

// ParseIDs splits a comma-separated id list, dropping blanks and duplicates.
func ParseIDs(raw string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Compare loads the machines in the order given and picks the highlights.
func (s *Store) Compare(ctx context.Context, ids []string) (Comparison, error) {
	if len(ids) < minCompare || len(ids) > maxCompare {
		return Comparison{}, &FieldError{"ids", fmt.Sprintf("need between %d and %d distinct ids", minCompare, maxCompare)}
	}

	items := make([]Equipment, 0, len(ids))
	for _, id := range ids {
		e, err := s.Get(ctx, id)
		if err != nil {
			return Comparison{}, err
		}
		items = append(items, e)
	}

	return Comparison{Items: items, Highlights: highlights(items)}, nil
}

func highlights(items []Equipment) map[string]string {
	h := make(map[string]string)

	pick := func(key string, value func(Equipment) (float64, bool), better func(a, b float64) bool) {
		var (
			best  float64
			found bool
		)
		for _, e := range items {
			v, ok := value(e)
			if !ok {
				continue
			}
			if !found || better(v, best) {
				best, found = v, true
				h[key] = e.ID
			}
		}
	}
	higher := func(a, b float64) bool { return a > b }

	pick(HighlightPower, func(e Equipment) (float64, bool) { return e.PowerKw, true }, higher)
	pick(HighlightPrice, func(e Equipment) (float64, bool) {
		if e.Price == nil {
			return 0, false
		}
		return *e.Price, true
	}, func(a, b float64) bool { return a < b })
	pick(HighlightBedArea, func(e Equipment) (float64, bool) { return e.BedAreaM2(), true }, higher)
	pick(HighlightThickness, func(e Equipment) (float64, bool) { return e.MaxThicknessMm, e.MaxThicknessMm > 0 }, higher)

	return h
}
