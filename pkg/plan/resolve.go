// Package plan turns a selection of catalog records into an ordered install
// plan.
//
// Each record is installed through at most one provider. winget is preferred;
// Chocolatey and then Scoop are used when a record has no winget mapping, or
// when its winget mapping points at the Microsoft Store and store apps are
// excluded. Store-only records without a fallback are reported as skipped.
package plan

import (
	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/winget"
)

// SkippedItem is a record whose winget mapping was excluded by policy.
type SkippedItem struct {
	App     catalog.Record
	Mapping catalog.WingetMapping
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Records is the deduplicated selection in display-name order.
	Records []catalog.Record
	// Items holds one install per resolvable record, in Records order.
	Items []Item
	// Skipped holds the store-only records that had no fallback provider.
	Skipped []SkippedItem
	// StoreExcluded holds every record whose store mapping was excluded,
	// including those that fell back to another provider.
	StoreExcluded []SkippedItem
}

// Resolve builds the install plan for records. It never fails: records with
// no usable mapping are left out of Items.
func Resolve(records []catalog.Record, opts Options) Resolution {
	ordered := dedupe(records)
	catalog.SortByName(ordered)

	res := Resolution{Records: ordered}
	for _, rec := range ordered {
		p := rec.Providers

		if w := p.Winget; w != nil {
			if opts.IncludeMsStoreApps || !winget.IsStoreSource(w.Source) {
				res.Items = append(res.Items, WingetItem{App: rec, Mapping: *w})
				continue
			}

			res.StoreExcluded = append(res.StoreExcluded, SkippedItem{App: rec, Mapping: *w})
			if item, ok := fallback(rec); ok {
				res.Items = append(res.Items, item)
			} else {
				res.Skipped = append(res.Skipped, SkippedItem{App: rec, Mapping: *w})
			}
			continue
		}

		// Records without any mapping are dropped without being reported.
		if item, ok := fallback(rec); ok {
			res.Items = append(res.Items, item)
		}
	}

	return res
}

func fallback(rec catalog.Record) (Item, bool) {
	if c := rec.Providers.Choco; c != nil {
		return ChocoItem{App: rec, Mapping: *c}, true
	}
	if s := rec.Providers.Scoop; s != nil {
		return ScoopItem{App: rec, Mapping: *s}, true
	}
	return nil, false
}

// dedupe keeps one record per id. A later record replaces an earlier one.
func dedupe(records []catalog.Record) []catalog.Record {
	index := make(map[string]int, len(records))
	out := make([]catalog.Record, 0, len(records))
	for _, rec := range records {
		if i, ok := index[rec.ID]; ok {
			out[i] = rec
			continue
		}
		index[rec.ID] = len(out)
		out = append(out, rec)
	}
	return out
}

// ByMethod returns the items installed through m, in plan order.
func (r Resolution) ByMethod(m Method) []Item {
	var out []Item
	for _, item := range r.Items {
		if item.Method() == m {
			out = append(out, item)
		}
	}
	return out
}

// Needs reports whether any item installs through m.
func (r Resolution) Needs(m Method) bool {
	for _, item := range r.Items {
		if item.Method() == m {
			return true
		}
	}
	return false
}

// Methods returns the providers the plan needs, in fallback priority order.
func (r Resolution) Methods() []Method {
	var out []Method
	for _, m := range catalog.AllProviders {
		if r.Needs(m) {
			out = append(out, m)
		}
	}
	return out
}

// IDs returns the ids of the resolved selection in display-name order.
func (r Resolution) IDs() []string {
	out := make([]string, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.ID
	}
	return out
}

// SkippedNames returns the display names of Skipped.
func (r Resolution) SkippedNames() []string {
	return names(r.Skipped)
}

// StoreExcludedNames returns the display names of StoreExcluded.
func (r Resolution) StoreExcludedNames() []string {
	return names(r.StoreExcluded)
}

func names(items []SkippedItem) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.App.Name
	}
	return out
}
