package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/appanvil/internal/schema"
)

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the catalog format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// rawCatalog is the on-disk shape: a table of apps. JSON and YAML catalogs may
// also be a bare list.
type rawCatalog struct {
	Apps []rawRecord `json:"apps" yaml:"apps" toml:"apps"`
}

type rawRecord struct {
	ID                string       `json:"id" yaml:"id" toml:"id" validate:"min=2"`
	Name              string       `json:"name" yaml:"name" toml:"name" validate:"required"`
	Description       string       `json:"description" yaml:"description" toml:"description"`
	Category          string       `json:"category" yaml:"category" toml:"category"`
	Tags              []string     `json:"tags" yaml:"tags" toml:"tags" validate:"dive,min=1"`
	Popularity        int          `json:"popularity" yaml:"popularity" toml:"popularity" validate:"min=0,max=100"`
	AddedAt           string       `json:"addedAt" yaml:"addedAt" toml:"addedAt"`
	Homepage          string       `json:"homepage" yaml:"homepage" toml:"homepage"`
	License           string       `json:"license" yaml:"license" toml:"license"`
	Providers         rawProviders `json:"providers" yaml:"providers" toml:"providers"`
	NeedsVerification bool         `json:"needsVerification" yaml:"needsVerification" toml:"needsVerification"`
}

type rawProviders struct {
	Winget *rawWinget `json:"winget" yaml:"winget" toml:"winget" validate:"required_without_all=Choco Scoop"`
	Choco  *rawChoco  `json:"choco" yaml:"choco" toml:"choco"`
	Scoop  *rawScoop  `json:"scoop" yaml:"scoop" toml:"scoop"`
}

type rawWinget struct {
	PackageID      string `json:"packageId" yaml:"packageId" toml:"packageId" validate:"required,pkgtoken"`
	Source         string `json:"source" yaml:"source" toml:"source" validate:"omitempty,pkgtoken"`
	SupportsSilent *bool  `json:"supportsSilent" yaml:"supportsSilent" toml:"supportsSilent"`
	Notes          string `json:"notes" yaml:"notes" toml:"notes"`
}

type rawChoco struct {
	PackageID string `json:"packageId" yaml:"packageId" toml:"packageId" validate:"required,pkgtoken"`
	Notes     string `json:"notes" yaml:"notes" toml:"notes"`
}

type rawScoop struct {
	PackageID string `json:"packageId" yaml:"packageId" toml:"packageId" validate:"required,pkgtoken"`
	Bucket    string `json:"bucket" yaml:"bucket" toml:"bucket" validate:"omitempty,pkgtoken"`
	Notes     string `json:"notes" yaml:"notes" toml:"notes"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return Parse(data, format)
}

// Parse decodes catalog data, applies mapping defaults and validates every
// record.
func Parse(data []byte, format Format) (*Catalog, error) {
	raws, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		if issue := schema.Check(raw); issue != nil {
			return nil, &ValidationError{
				Index:   i,
				ID:      raw.ID,
				Field:   issue.Field,
				Message: issue.Message,
			}
		}
		records = append(records, raw.toRecord())
	}

	return New(records)
}

func decode(data []byte, format Format) ([]rawRecord, error) {
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var list []rawRecord
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("parsing catalog JSON: %w", err)
			}
			return list, nil
		}
		var doc rawCatalog
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parsing catalog JSON: %w", err)
		}
		return doc.Apps, nil

	case FormatYAML:
		var list []rawRecord
		if err := yaml.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		var doc rawCatalog
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing catalog YAML: %w", err)
		}
		return doc.Apps, nil

	case FormatTOML:
		var doc rawCatalog
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("parsing catalog TOML: %w", err)
		}
		return doc.Apps, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func (r rawRecord) toRecord() Record {
	rec := Record{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		Tags:              r.Tags,
		Popularity:        r.Popularity,
		AddedAt:           r.AddedAt,
		Homepage:          r.Homepage,
		License:           r.License,
		NeedsVerification: r.NeedsVerification,
	}

	if w := r.Providers.Winget; w != nil {
		source := strings.TrimSpace(w.Source)
		if source == "" {
			source = DefaultWingetSource
		}
		silent := true
		if w.SupportsSilent != nil {
			silent = *w.SupportsSilent
		}
		rec.Providers.Winget = &WingetMapping{
			PackageID:      w.PackageID,
			Source:         source,
			SupportsSilent: silent,
			Notes:          w.Notes,
		}
	}

	if c := r.Providers.Choco; c != nil {
		rec.Providers.Choco = &ChocoMapping{PackageID: c.PackageID, Notes: c.Notes}
	}

	if s := r.Providers.Scoop; s != nil {
		bucket := strings.TrimSpace(s.Bucket)
		if bucket == "" {
			bucket = DefaultScoopBucket
		}
		rec.Providers.Scoop = &ScoopMapping{PackageID: s.PackageID, Bucket: bucket, Notes: s.Notes}
	}

	return rec
}
