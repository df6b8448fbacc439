package targets

import (
	"context"
	"fmt"
	"os"

	"github.com/law-makers/phonecrawl/pkg/models"
	"gopkg.in/yaml.v3"
)

// PathList accepts either a single path or a list of paths
type PathList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (p *PathList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = PathList{value.Value}
		return nil
	case yaml.SequenceNode:
		var paths []string
		if err := value.Decode(&paths); err != nil {
			return err
		}
		*p = paths
		return nil
	default:
		return fmt.Errorf("line %d: paths must be a string or a list of strings", value.Line)
	}
}

// File reads targets from a YAML document mapping each site URL to its paths:
//
//	https://hands.ru: /company/about
//	https://www.tinkoff.ru: [/about, /cards/credit-cards]
type File struct {
	Path string
}

// Targets implements Source
func (f File) Targets(ctx context.Context) (map[string]models.SiteTarget, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a targets document
func Parse(data []byte) (map[string]models.SiteTarget, error) {
	var doc map[string]PathList
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse targets: %w", err)
	}

	sites := make(map[string]models.SiteTarget, len(doc))
	for site, paths := range doc {
		if len(paths) == 0 {
			return nil, fmt.Errorf("site %q: no paths", site)
		}
		sites[site] = models.NewSiteTarget(site, paths...)
	}

	if err := validate(sites); err != nil {
		return nil, err
	}
	return sites, nil
}
