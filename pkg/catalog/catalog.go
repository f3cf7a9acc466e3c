package catalog

import (
	"sort"
	"strings"
)

// Catalog is an ordered, read-only set of records with unique ids.
type Catalog struct {
	records []Record
	byID    map[string]int
}

// New builds a catalog, rejecting duplicate ids and records without any
// provider mapping.
func New(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}

	var duplicates []string
	seenDup := make(map[string]bool)
	for i, rec := range records {
		if !rec.Providers.Any() {
			return nil, &ValidationError{
				Index:   i,
				ID:      rec.ID,
				Field:   "providers",
				Message: "at least one provider mapping is required",
			}
		}
		if _, ok := c.byID[rec.ID]; ok {
			if !seenDup[rec.ID] {
				duplicates = append(duplicates, rec.ID)
				seenDup[rec.ID] = true
			}
			continue
		}
		c.byID[rec.ID] = len(c.records)
		c.records = append(c.records, rec)
	}

	if len(duplicates) > 0 {
		return nil, &ValidationError{
			Index:   -1,
			Message: "duplicate app ids: " + strings.Join(duplicates, ", "),
			Err:     ErrDuplicateID,
		}
	}

	return c, nil
}

// Records returns the records in catalog order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// ByID looks up a record.
func (c *Catalog) ByID(id string) (Record, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[idx], true
}

// Select returns the records for ids in the order given, ignoring repeats.
// Ids not present in the catalog are returned separately.
func (c *Catalog) Select(ids []string) (selected []Record, unknown []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		rec, ok := c.ByID(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		selected = append(selected, rec)
	}
	return selected, unknown
}

// KnownIDs filters ids down to those present in the catalog, keeping order.
func (c *Catalog) KnownIDs(ids []string) []string {
	selected, _ := c.Select(ids)
	out := make([]string, 0, len(selected))
	for _, rec := range selected {
		out = append(out, rec.ID)
	}
	return out
}

// Categories returns the distinct record categories, sorted.
func (c *Catalog) Categories() []string {
	set := make(map[string]struct{})
	for _, rec := range c.records {
		if rec.Category != "" {
			set[rec.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for category := range set {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
