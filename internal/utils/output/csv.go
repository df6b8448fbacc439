package output

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/law-makers/phonecrawl/pkg/models"
)

// csvHeader is the column layout of WriteCSV
var csvHeader = []string{"site", "path", "phone", "tier", "error"}

// WriteCSV writes one row per requested path, sites sorted and paths in request order
func WriteCSV(w io.Writer, agg models.AggregateResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, site := range sortedSites(agg) {
		for _, r := range agg[site].Results {
			errText := ""
			if r.Err != nil {
				errText = r.Err.Error()
			}
			if err := writer.Write([]string{site, r.Path, r.Phone, r.Tier.String(), errText}); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func sortedSites(agg models.AggregateResult) []string {
	sites := make([]string, 0, len(agg))
	for site := range agg {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}
