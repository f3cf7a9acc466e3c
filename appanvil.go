// Package appanvil turns a selection of catalog apps into install scripts
// and share links.
package appanvil

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/arc-language/appanvil/pkg/catalog"
	"github.com/arc-language/appanvil/pkg/emit"
	"github.com/arc-language/appanvil/pkg/plan"
	"github.com/arc-language/appanvil/pkg/share"
)

// Re-export core types for convenience
type (
	Record     = catalog.Record
	Catalog    = catalog.Catalog
	Options    = plan.Options
	Resolution = plan.Resolution
	Outputs    = emit.Outputs
	Format     = emit.Format
	Payload    = share.Payload
)

// DefaultOptions returns the default generator options.
func DefaultOptions() Options {
	return plan.DefaultOptions()
}

// Config holds Generator settings
type Config struct {
	// ShareBaseURL is the site share links point at; empty disables URLs
	ShareBaseURL string

	// Codec encodes share tokens; nil uses LZMA
	Codec *share.Codec

	// Timeout for fetching remote catalogs
	Timeout time.Duration

	// Logger for custom logging
	Logger *log.Logger
}

// Generator resolves selections against one catalog.
type Generator struct {
	catalog *catalog.Catalog
	codec   *share.Codec
	baseURL string
	logger  *log.Logger
}

// NewGenerator creates a generator over cat.
func NewGenerator(cat *catalog.Catalog, config *Config) (*Generator, error) {
	if cat == nil {
		return nil, &Error{Op: "new generator", Err: ErrNoCatalog}
	}
	if config == nil {
		config = &Config{}
	}

	codec := config.Codec
	if codec == nil {
		codec = share.NewCodec()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Generator{
		catalog: cat,
		codec:   codec,
		baseURL: config.ShareBaseURL,
		logger:  logger,
	}, nil
}

// Open loads the catalog at source, a file path or an http(s) URL, and
// returns a generator over it.
func Open(ctx context.Context, source string, config *Config) (*Generator, error) {
	if source == "" {
		return nil, &Error{Op: "open", Err: ErrNoCatalog}
	}
	if config == nil {
		config = &Config{}
	}

	var (
		cat *catalog.Catalog
		err error
	)
	if isURL(source) {
		cat, err = catalog.NewFetcher(config.Timeout, config.Logger).Fetch(ctx, source)
	} else {
		cat, err = catalog.Load(source)
	}
	if err != nil {
		return nil, &Error{Op: "open", Package: source, Err: err}
	}

	return NewGenerator(cat, config)
}

// Catalog returns the underlying catalog.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Select returns the records for ids. Every id must exist.
func (g *Generator) Select(ids []string) ([]Record, error) {
	if len(ids) == 0 {
		return nil, &Error{Op: "select", Err: ErrEmptySelection}
	}
	records, unknown := g.catalog.Select(ids)
	if len(unknown) > 0 {
		return nil, &Error{Op: "select", Package: strings.Join(unknown, ", "), Err: ErrPackageNotFound}
	}
	return records, nil
}

// Plan resolves ids into an install plan.
func (g *Generator) Plan(ids []string, opts Options) (Resolution, error) {
	records, err := g.Select(ids)
	if err != nil {
		return Resolution{}, err
	}
	res := plan.Resolve(records, opts)
	g.logger.Printf("Resolved %d of %d apps (%d skipped)", len(res.Items), len(records), len(res.Skipped))
	return res, nil
}

// Generate renders every artifact for ids.
func (g *Generator) Generate(ids []string, opts Options) (Outputs, error) {
	records, err := g.Select(ids)
	if err != nil {
		return Outputs{}, err
	}
	out := emit.Generate(records, opts)
	g.logger.Printf("Generated %d artifacts for %d apps", len(out.Artifacts()), len(records))
	return out, nil
}

// Share encodes ids and opts into a token and, when a base URL is set, a
// share link.
func (g *Generator) Share(ids []string, opts Options) (token, link string, err error) {
	if _, err := g.Select(ids); err != nil {
		return "", "", err
	}

	token, err = g.codec.Encode(share.NewPayload(ids, opts))
	if err != nil {
		return "", "", &Error{Op: "share", Err: err}
	}
	if g.baseURL != "" {
		link = share.ShareURL(g.baseURL, token)
	}
	return token, link, nil
}

// Selection is an imported selection restricted to this catalog.
type Selection struct {
	IDs     []string
	Unknown []string // ids dropped because the catalog lacks them
	Options Options
}

// Import reads a token, share link or selection JSON. Ids the catalog does
// not know are dropped and reported in Unknown.
func (g *Generator) Import(text string) (Selection, error) {
	payload, err := g.codec.ParseFromText(text)
	if err != nil {
		return Selection{}, &Error{Op: "import", Err: err}
	}

	records, unknown := g.catalog.Select(payload.SelectedIDs)
	sel := Selection{
		IDs:     make([]string, 0, len(records)),
		Unknown: unknown,
		Options: payload.Options,
	}
	for _, rec := range records {
		sel.IDs = append(sel.IDs, rec.ID)
	}
	if len(unknown) > 0 {
		g.logger.Printf("Dropped %d unknown ids: %s", len(unknown), strings.Join(unknown, ", "))
	}
	if len(sel.IDs) == 0 {
		return sel, &Error{Op: "import", Err: ErrEmptySelection}
	}
	return sel, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
