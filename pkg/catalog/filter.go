package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode orders filtered records.
type SortMode string

const (
	SortPopularity SortMode = "popularity"
	SortName       SortMode = "name"
	SortRecent     SortMode = "recent"
)

// Filters narrows a catalog listing. Zero values disable a filter.
type Filters struct {
	Query       string
	Categories  []string
	Providers   []Provider // records must have at least one of these
	PopularOnly bool
	Sort        SortMode
}

// SortByName sorts records by display name using Unicode collation, breaking
// ties by id so the order is total.
func SortByName(records []Record) {
	// Collators are not safe for concurrent use.
	col := collate.New(language.Und)
	sort.SliceStable(records, func(i, j int) bool {
		if c := col.CompareString(records[i].Name, records[j].Name); c != 0 {
			return c < 0
		}
		return records[i].ID < records[j].ID
	})
}

// Filter applies f to the catalog and returns matching records in f.Sort
// order (popularity when unset).
func (c *Catalog) Filter(f Filters) []Record {
	out := c.Search(f.Query)

	if len(f.Providers) > 0 {
		out = keep(out, func(r Record) bool {
			for _, p := range f.Providers {
				if r.Providers.Has(p) {
					return true
				}
			}
			return false
		})
	}

	if len(f.Categories) > 0 {
		allowed := make(map[string]bool, len(f.Categories))
		for _, category := range f.Categories {
			allowed[category] = true
		}
		out = keep(out, func(r Record) bool { return allowed[r.Category] })
	}

	if f.PopularOnly {
		out = keep(out, Record.IsPopular)
	}

	switch f.Sort {
	case SortName:
		SortByName(out)
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AddedAt > out[j].AddedAt })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	}

	return out
}

// Search returns records whose name, description or tags contain query,
// case-insensitively. An empty query matches everything.
func (c *Catalog) Search(query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Records()
	}

	return keep(c.records, func(r Record) bool {
		if strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.Description), query) {
			return true
		}
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				return true
			}
		}
		return false
	})
}

func keep(records []Record, pred func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
