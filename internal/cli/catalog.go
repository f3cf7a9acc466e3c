package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/appanvil/pkg/backend"
	"github.com/arc-language/appanvil/pkg/catalog"
)

var (
	listCategories []string
	listProviders  []string
	listPopular    bool
	listSort       string

	verifyConcurrency int
	verifyProviders   []string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse, sync and verify the app catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog apps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalogList(cmd, "")
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search catalog apps by name, description or tag",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalogList(cmd, strings.Join(args, " "))
	},
}

var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the catalog from its git repository into the cache",
	Args:  cobra.NoArgs,
	RunE:  runCatalogSync,
}

var catalogVerifyCmd = &cobra.Command{
	Use:   "verify [app-id...]",
	Short: "Check that provider mappings resolve to real packages",
	Long: `Look up every provider mapping of the catalog (or of the given apps) in
the winget, Chocolatey and Scoop registries and report the ones that do not
resolve. Exits non-zero when any mapping is missing or fails.`,
	RunE: runCatalogVerify,
}

func init() {
	for _, cmd := range []*cobra.Command{catalogListCmd, catalogSearchCmd} {
		cmd.Flags().StringSliceVar(&listCategories, "category", nil, "only show these categories")
		cmd.Flags().StringSliceVar(&listProviders, "provider", nil, "only show apps available through these providers")
		cmd.Flags().BoolVar(&listPopular, "popular", false, "only show popular apps")
		cmd.Flags().StringVar(&listSort, "sort", string(catalog.SortPopularity), "sort by popularity, name or recent")
	}

	catalogVerifyCmd.Flags().IntVar(&verifyConcurrency, "concurrency", backend.DefaultConcurrency, "parallel lookups")
	catalogVerifyCmd.Flags().StringSliceVar(&verifyProviders, "provider", nil, "only verify these providers")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogSyncCmd)
	catalogCmd.AddCommand(catalogVerifyCmd)
}

func runCatalogList(cmd *cobra.Command, query string) error {
	w := cmd.OutOrStdout()

	g, err := openGenerator(cmd.Context())
	if err != nil {
		return err
	}

	providers, err := parseProviders(listProviders)
	if err != nil {
		return err
	}
	sortMode := catalog.SortMode(strings.ToLower(listSort))
	switch sortMode {
	case catalog.SortPopularity, catalog.SortName, catalog.SortRecent:
	default:
		return fmt.Errorf("unknown sort %q (want popularity, name or recent)", listSort)
	}

	records := g.Catalog().Filter(catalog.Filters{
		Query:       query,
		Categories:  listCategories,
		Providers:   providers,
		PopularOnly: listPopular,
		Sort:        sortMode,
	})

	if len(records) == 0 {
		printEmptyState(w, "No apps match")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.ID, rec.Name, rec.Category, providerList(rec)})
	}
	printTable(w, []string{"ID", "NAME", "CATEGORY", "PROVIDERS"}, rows)
	fmt.Fprintf(w, "\n%s\n", pluralize(len(records), "app", "apps"))
	return nil
}

func runCatalogSync(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	var progress io.Writer
	if config.Debug {
		progress = os.Stderr
	}

	path, err := catalog.Sync(cmd.Context(), catalog.SyncOptions{
		RepoURL:  config.CatalogRepo,
		Branch:   config.CatalogBranch,
		CacheDir: config.CachePath,
		Progress: progress,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	printSuccess(w, fmt.Sprintf("Synced %s to %s", pluralize(cat.Len(), "app", "apps"), path))
	return nil
}

func runCatalogVerify(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	g, err := openGenerator(cmd.Context())
	if err != nil {
		return err
	}

	records := g.Catalog().Records()
	if len(args) > 0 {
		if records, err = g.Select(args); err != nil {
			return err
		}
	}

	providers, err := parseProviders(verifyProviders)
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		providers = catalog.AllProviders
	}

	cfg := backend.DefaultConfig()
	cfg.Debug = config.Debug
	cfg.Logger = logger

	backends := make([]backend.Backend, 0, len(providers))
	for _, p := range providers {
		b, err := backend.New(p, cfg)
		if err != nil {
			return err
		}
		defer b.Close()
		backends = append(backends, b)
	}

	findings, err := backend.VerifyCatalog(cmd.Context(), records, backends, verifyConcurrency)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		detail := ""
		switch {
		case f.Info != nil:
			detail = f.Info.Version
		case f.Err != nil:
			detail = f.Err.Error()
		}
		rows = append(rows, []string{f.RecordID, string(f.Provider), f.PackageID, string(f.Status), detail})
	}
	printTable(w, []string{"APP", "PROVIDER", "PACKAGE", "STATUS", "DETAIL"}, rows)

	counts := backend.Summarize(findings)
	fmt.Fprintln(w)
	printLabelValue(w, "ok", fmt.Sprint(counts[backend.StatusOK]))
	printLabelValue(w, "missing", fmt.Sprint(counts[backend.StatusMissing]))
	printLabelValue(w, "error", fmt.Sprint(counts[backend.StatusError]))

	if failed := counts[backend.StatusMissing] + counts[backend.StatusError]; failed > 0 {
		return fmt.Errorf("%s failed verification", pluralize(failed, "mapping", "mappings"))
	}
	printSuccess(w, "All mappings resolve")
	return nil
}

func parseProviders(names []string) ([]catalog.Provider, error) {
	var out []catalog.Provider
	for _, name := range names {
		p := catalog.Provider(strings.ToLower(strings.TrimSpace(name)))
		switch p {
		case catalog.ProviderWinget, catalog.ProviderChoco, catalog.ProviderScoop:
			out = append(out, p)
		default:
			return nil, fmt.Errorf("unknown provider %q (want winget, choco or scoop)", name)
		}
	}
	return out, nil
}

func providerList(rec catalog.Record) string {
	var names []string
	for _, p := range catalog.AllProviders {
		if rec.Providers.Has(p) {
			names = append(names, string(p))
		}
	}
	return strings.Join(names, ", ")
}
