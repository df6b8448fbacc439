package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/law-makers/phonecrawl/internal/phone"
	"github.com/law-makers/phonecrawl/internal/ui"
	"github.com/law-makers/phonecrawl/pkg/models"
)

// PrintSummary writes a colored per-site table followed by totals and elapsed time
func PrintSummary(w io.Writer, agg models.AggregateResult, elapsed time.Duration) {
	found, total := 0, 0

	for _, site := range sortedSites(agg) {
		res := agg[site]
		status := ui.Success("ok")
		if res.Err != nil {
			status = ui.Error("failed")
		}
		fmt.Fprintf(w, "\n%s  %s %s\n", ui.Bold(site), status, ui.Info(res.Duration.Round(time.Millisecond).String()))

		for _, r := range res.Results {
			total++
			path := r.Path
			if path == "" {
				path = "/"
			}
			if r.Found() {
				found++
				fmt.Fprintf(w, "  %-32s %s %s\n", path, ui.Success(phone.Format(r.Phone)), ui.Info(r.Tier.String()))
				continue
			}
			if r.Err == nil {
				fmt.Fprintf(w, "  %-32s %s\n", path, ui.Warn("not found"))
				continue
			}
			fmt.Fprintf(w, "  %-32s %s\n", path, ui.Error(r.Err.Error()))
		}

		if uniq := res.UniquePhones(); len(uniq) < countFound(res) {
			fmt.Fprintf(w, "  %s\n", ui.Info(fmt.Sprintf("%d distinct of %d found: %s", len(uniq), countFound(res), strings.Join(uniq, ", "))))
		}
	}

	fmt.Fprintf(w, "\n%s %d/%d phones found across %d sites (%d failed) in %s\n",
		ui.Bold("Done:"), found, total, len(agg), agg.Failed(), elapsed.Round(time.Millisecond))
}

func countFound(res models.SiteResult) int {
	n := 0
	for _, r := range res.Results {
		if r.Found() {
			n++
		}
	}
	return n
}
