package choco

import (
	"log"
	"time"
)

// Config configures the Chocolatey repository client
type Config struct {
	RepositoryURL string // Default: https://community.chocolatey.org/api/v2
	Timeout       time.Duration
	Debug         bool
	Logger        *log.Logger
}

// PackageInfo contains metadata about a Chocolatey package
type PackageInfo struct {
	ID            string   // Package ID (e.g., "curl")
	Version       string   // Version
	Title         string   // Display title
	Description   string   // Description
	Summary       string   // Short summary
	Authors       string   // Authors
	ProjectURL    string   // Project URL
	LicenseURL    string   // License URL
	Tags          string   // Tags (space-separated)
	Dependencies  []string // Dependencies
	Published     string   // Published date
	DownloadCount int64    // Download count
}
