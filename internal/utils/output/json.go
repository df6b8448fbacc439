package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/phonecrawl/pkg/models"
)

// phoneMap converts an aggregate into site -> phones with nil as the absence marker
func phoneMap(agg models.AggregateResult) map[string][]*string {
	out := make(map[string][]*string, len(agg))
	for site, res := range agg {
		phones := make([]*string, len(res.Results))
		for i := range res.Results {
			if res.Results[i].Found() {
				p := res.Results[i].Phone
				phones[i] = &p
			}
		}
		out[site] = phones
	}
	return out
}

// WriteJSON writes the aggregate as {"site": ["phone" | null, ...]}, sites sorted
func WriteJSON(w io.Writer, agg models.AggregateResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(phoneMap(agg))
}
