// Package targets loads the sites and paths a scan visits.
package targets

import (
	"context"
	"fmt"

	urlutil "github.com/law-makers/phonecrawl/internal/utils/url"
	"github.com/law-makers/phonecrawl/pkg/models"
)

// Source yields scan targets keyed by site identifier
type Source interface {
	Targets(ctx context.Context) (map[string]models.SiteTarget, error)
}

// Static is a fixed, in-memory set of targets
type Static map[string]models.SiteTarget

// Targets implements Source
func (s Static) Targets(ctx context.Context) (map[string]models.SiteTarget, error) {
	out := make(map[string]models.SiteTarget, len(s))
	for id, t := range s {
		out[id] = t
	}
	return out, nil
}

// Demo returns the built-in sample targets used when no source is given
func Demo() Static {
	return Static{
		"https://www.tinkoff.ru":  models.NewSiteTarget("https://www.tinkoff.ru", "/about", "/cards/credit-cards"),
		"https://hands.ru":        models.NewSiteTarget("https://hands.ru", "/company/about"),
		"https://repetitors.info": models.NewSiteTarget("https://repetitors.info", "/"),
		"https://5ka.ru":          models.NewSiteTarget("https://5ka.ru", "/about/"),
	}
}

// FromArgs builds a single-site source from a site URL and its paths.
// With no paths the site root is probed.
func FromArgs(site string, paths ...string) (Static, error) {
	if err := urlutil.ValidateURL(site); err != nil {
		return nil, fmt.Errorf("site %q: %w", site, err)
	}
	if len(paths) == 0 {
		paths = []string{""}
	}
	return Static{site: models.NewSiteTarget(site, paths...)}, nil
}

// validate checks every site URL of a loaded target set
func validate(sites map[string]models.SiteTarget) error {
	for id, t := range sites {
		if err := urlutil.ValidateURL(t.Site); err != nil {
			return fmt.Errorf("site %q: %w", id, err)
		}
	}
	return nil
}
