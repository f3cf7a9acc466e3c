package choco

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// AtomFeed represents the NuGet V2 API response
type AtomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []AtomEntry `xml:"entry"`
}

// AtomEntry represents a package entry in the feed
type AtomEntry struct {
	ID      string       `xml:"id"`
	Title   string       `xml:"title"`
	Summary string       `xml:"summary"`
	Updated string       `xml:"updated"`
	Props   PackageProps `xml:"properties"`
}

// PackageProps represents the metadata properties
type PackageProps struct {
	ID            string `xml:"Id"`
	Version       string `xml:"Version"`
	Title         string `xml:"Title"`
	Description   string `xml:"Description"`
	Summary       string `xml:"Summary"`
	Authors       string `xml:"Authors"`
	ProjectURL    string `xml:"ProjectUrl"`
	LicenseURL    string `xml:"LicenseUrl"`
	Tags          string `xml:"Tags"`
	Dependencies  string `xml:"Dependencies"`
	Published     string `xml:"Published"`
	DownloadCount string `xml:"DownloadCount"`
}

// ParseFeed parses the NuGet V2 API Atom feed response
func ParseFeed(r io.Reader) ([]*PackageInfo, error) {
	var feed AtomFeed
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	var packages []*PackageInfo
	for _, entry := range feed.Entries {
		pkg := &PackageInfo{
			ID:          entry.Props.ID,
			Version:     entry.Props.Version,
			Title:       entry.Title,
			Description: strings.TrimSpace(entry.Props.Description),
			Summary:     strings.TrimSpace(entry.Props.Summary),
			Authors:     entry.Props.Authors,
			ProjectURL:  entry.Props.ProjectURL,
			LicenseURL:  entry.Props.LicenseURL,
			Tags:        entry.Props.Tags,
			Published:   entry.Props.Published,
		}

		if entry.Props.Dependencies != "" {
			pkg.Dependencies = parseDependencies(entry.Props.Dependencies)
		}

		if entry.Props.DownloadCount != "" {
			if count, err := strconv.ParseInt(entry.Props.DownloadCount, 10, 64); err == nil {
				pkg.DownloadCount = count
			}
		}

		packages = append(packages, pkg)
	}

	return packages, nil
}

// parseDependencies keeps only the ids of "id:version:targetFramework" entries
func parseDependencies(deps string) []string {
	var result []string
	for _, part := range strings.Split(deps, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, ":"); idx > 0 {
			result = append(result, part[:idx])
		} else {
			result = append(result, part)
		}
	}
	return result
}
