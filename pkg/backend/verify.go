package backend

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/arc-language/appanvil/pkg/catalog"
)

// DefaultConcurrency bounds parallel lookups in VerifyCatalog.
const DefaultConcurrency = 8

// Status is the outcome of checking one mapping.
type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "missing"
	StatusError   Status = "error"
)

// Finding reports whether one provider mapping of a record resolves.
type Finding struct {
	RecordID  string
	Name      string
	Provider  BackendType
	PackageID string
	Status    Status
	Info      *PackageInfo // set when Status is StatusOK
	Err       error        // set otherwise
}

type job struct {
	rec     catalog.Record
	backend Backend
}

// VerifyCatalog looks up every mapping of records with the backend serving
// its provider, running at most concurrency lookups at once. Lookup failures
// are reported as findings; the returned error is only set when ctx ends.
// Findings are sorted by record id, then provider order.
func VerifyCatalog(ctx context.Context, records []catalog.Record, backends []Backend, concurrency int) ([]Finding, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var jobs []job
	for _, rec := range records {
		for _, b := range backends {
			if rec.Providers.Has(b.Name()) {
				jobs = append(jobs, job{rec: rec, backend: b})
			}
		}
	}

	findings := make([]Finding, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			findings[i] = check(ctx, j)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := make(map[BackendType]int, len(catalog.AllProviders))
	for i, p := range catalog.AllProviders {
		order[p] = i
	}
	sort.SliceStable(findings, func(a, b int) bool {
		if findings[a].RecordID != findings[b].RecordID {
			return findings[a].RecordID < findings[b].RecordID
		}
		return order[findings[a].Provider] < order[findings[b].Provider]
	})

	return findings, nil
}

func check(ctx context.Context, j job) Finding {
	f := Finding{
		RecordID:  j.rec.ID,
		Name:      j.rec.Name,
		Provider:  j.backend.Name(),
		PackageID: packageID(j.rec, j.backend.Name()),
	}

	info, err := j.backend.Lookup(ctx, j.rec)
	switch {
	case err == nil:
		f.Status = StatusOK
		f.Info = info
	case errors.Is(err, ErrNotFound):
		f.Status = StatusMissing
		f.Err = err
	default:
		f.Status = StatusError
		f.Err = err
	}
	return f
}

func packageID(rec catalog.Record, p BackendType) string {
	switch p {
	case BackendWinget:
		if m := rec.Providers.Winget; m != nil {
			return m.PackageID
		}
	case BackendChoco:
		if m := rec.Providers.Choco; m != nil {
			return m.PackageID
		}
	case BackendScoop:
		if m := rec.Providers.Scoop; m != nil {
			return m.PackageID
		}
	}
	return ""
}

// Summarize counts findings by status.
func Summarize(findings []Finding) map[Status]int {
	counts := make(map[Status]int, 3)
	for _, f := range findings {
		counts[f.Status]++
	}
	return counts
}
