// internal/cli/probe.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/phonecrawl/internal/phone"
	"github.com/law-makers/phonecrawl/internal/reqctx"
	"github.com/law-makers/phonecrawl/internal/ui"
	urlutil "github.com/law-makers/phonecrawl/internal/utils/url"
)

var probeHeaders []string

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Extract a phone number from a single page",
	Long:  `Fetches one page and runs the extraction tiers on it, printing the phone number and the tier that found it.`,
	Example: `  phonecrawl probe https://hands.ru/company/about
  phonecrawl probe https://5ka.ru/about/ -v`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringArrayVarP(&probeHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"Cookie: a=b\")")
}

func runProbe(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	url := args[0]
	if err := urlutil.ValidateURL(url); err != nil {
		return err
	}

	ctx := reqctx.WithRun(cmd.Context())

	body, err := a.Fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	ex, err := a.Extractor.Extract(ctx, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s\n",
		ui.Success(ex.Phone), phone.Format(ex.Phone), ui.Info("("+ex.Tier.String()+")"))
	return nil
}
