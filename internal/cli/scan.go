// internal/cli/scan.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/phonecrawl/internal/app"
	"github.com/law-makers/phonecrawl/internal/config"
	"github.com/law-makers/phonecrawl/internal/reqctx"
	"github.com/law-makers/phonecrawl/internal/targets"
	"github.com/law-makers/phonecrawl/internal/utils/output"
	"github.com/law-makers/phonecrawl/pkg/models"
)

var (
	targetsFile string
	outputPath  string
	format      string
	strict      bool
	noProgress  bool
	scanHeaders []string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [site] [path...]",
	Short: "Extract phone numbers from many sites at once",
	Long: `Fetches every path of every site concurrently and extracts one phone number per page.

Targets come from --targets (YAML), --dsn (Postgres), or a site and its paths given as
arguments. Without any of these a built-in sample set is scanned.

Failed pages are reported per entry and never stop the batch. Use --strict to exit
non-zero when any site failed.`,
	Example: `  # Scan the built-in sample sites
  phonecrawl scan

  # Scan one site
  phonecrawl scan https://hands.ru /company/about /contacts

  # Scan from a targets file and save JSON
  phonecrawl scan --targets sites.yaml --output phones.json

  # Load targets from Postgres, export metrics, fail on any error
  phonecrawl scan --dsn postgres://localhost/crawl --metrics-addr :9090 --strict`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	config.RegisterScanFlags(scanCmd)
	scanCmd.Flags().StringVarP(&targetsFile, "targets", "t", "", "YAML file mapping sites to a path or list of paths")
	scanCmd.Flags().StringVarP(&outputPath, "output", "o", "", "File path to save results (.json or .csv)")
	scanCmd.Flags().StringVarP(&format, "format", "f", "table", "Stdout format: table, json or csv")
	scanCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any site failed")
	scanCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Hide the progress bar")
	scanCmd.Flags().StringArrayVarP(&scanHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"Cookie: a=b\")")
}

func runScan(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	switch format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("invalid format: %s (must be table, json or csv)", format)
	}

	ctx := reqctx.WithRun(cmd.Context())
	logger := reqctx.Logger(ctx)

	src, closeSrc, err := resolveSource(ctx, a, args)
	if err != nil {
		return err
	}
	defer closeSrc()

	sites, err := src.Targets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load targets: %w", err)
	}
	if len(sites) == 0 {
		return fmt.Errorf("no targets to scan")
	}

	a.ServeMetrics(ctx)

	bar := progressbar.NewOptions(len(sites),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Scanning sites"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!noProgress && !a.Config.JSONLog && a.Config.LogLevel != "debug"),
	)
	a.Driver.OnSite = func(models.SiteResult) { _ = bar.Add(1) }

	agg := a.Driver.Run(ctx, sites)
	_ = bar.Finish()

	if outputPath != "" {
		if err := output.Save(agg, outputPath); err != nil {
			return err
		}
		logger.Info().Str("path", outputPath).Msg("Results saved")
	}

	switch format {
	case "json":
		err = output.WriteJSON(cmd.OutOrStdout(), agg)
	case "csv":
		err = output.WriteCSV(cmd.OutOrStdout(), agg)
	default:
		output.PrintSummary(cmd.OutOrStdout(), agg, reqctx.Elapsed(ctx))
	}
	if err != nil {
		return err
	}

	if strict && agg.Failed() > 0 {
		return fmt.Errorf("%d of %d sites failed: %w", agg.Failed(), len(agg), agg.Err())
	}
	return nil
}

// resolveSource picks the target source: a file, then the database, then arguments,
// then the built-in sample set. The returned func releases the source.
func resolveSource(ctx context.Context, a *app.Application, args []string) (targets.Source, func(), error) {
	noop := func() {}

	switch {
	case targetsFile != "":
		return targets.File{Path: targetsFile}, noop, nil
	case a.Config.DatabaseDSN != "":
		pg, err := targets.NewPostgres(ctx, a.Config.DatabaseDSN, a.Config.DatabaseTable)
		if err != nil {
			return nil, noop, err
		}
		return pg, pg.Close, nil
	case len(args) > 0:
		src, err := targets.FromArgs(args[0], args[1:]...)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	default:
		return targets.Demo(), noop, nil
	}
}
