package models

import (
	"errors"
	"time"
)

// SiteTarget is a base URL plus the relative paths to probe for a phone number
type SiteTarget struct {
	Site  string   `json:"site" yaml:"site"`
	Paths []string `json:"paths" yaml:"paths"`
}

// NewSiteTarget builds a target from one or more paths
func NewSiteTarget(site string, paths ...string) SiteTarget {
	p := make([]string, len(paths))
	copy(p, paths)
	return SiteTarget{Site: site, Paths: p}
}

// Tier identifies which extraction strategy produced a phone number
type Tier int

const (
	// TierNone means no strategy produced a phone number
	TierNone Tier = iota

	// TierMarkup is the class-marked element lookup
	TierMarkup

	// TierRegex is the regex scan over raw page content
	TierRegex

	// TierRender is the rendered-page fallback
	TierRender
)

// String returns the string representation of the tier
func (t Tier) String() string {
	switch t {
	case TierMarkup:
		return "markup"
	case TierRegex:
		return "regex"
	case TierRender:
		return "render"
	default:
		return "none"
	}
}

// Extraction is the outcome of running the extractor over one page
type Extraction struct {
	Phone string
	Tier  Tier
}

// PathResult is the extraction result for a single requested path.
// An empty Phone is the absence marker; Err explains why it is absent.
type PathResult struct {
	Path  string `json:"path"`
	Phone string `json:"phone,omitempty"`
	Tier  Tier   `json:"-"`
	Err   error  `json:"-"`
}

// Found reports whether a phone number was extracted for the path
func (r PathResult) Found() bool {
	return r.Phone != ""
}

// SiteResult holds one PathResult per requested path, in request order
type SiteResult struct {
	Site     string
	Results  []PathResult
	Err      error
	Duration time.Duration
}

// Phones returns the phone list in path order, with "" for absent entries
func (r SiteResult) Phones() []string {
	phones := make([]string, len(r.Results))
	for i, res := range r.Results {
		phones[i] = res.Phone
	}
	return phones
}

// UniquePhones returns the found phones with duplicates removed, first occurrence wins
func (r SiteResult) UniquePhones() []string {
	seen := make(map[string]bool)
	unique := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Phone == "" || seen[res.Phone] {
			continue
		}
		seen[res.Phone] = true
		unique = append(unique, res.Phone)
	}
	return unique
}

// AggregateResult maps a site identifier to its result
type AggregateResult map[string]SiteResult

// Phones flattens the aggregate into site -> phone list
func (a AggregateResult) Phones() map[string][]string {
	out := make(map[string][]string, len(a))
	for site, res := range a {
		out[site] = res.Phones()
	}
	return out
}

// Failed returns the number of sites whose result carries an error
func (a AggregateResult) Failed() int {
	n := 0
	for _, res := range a {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Err joins the errors of every failed site, or returns nil
func (a AggregateResult) Err() error {
	var errs []error
	for _, res := range a {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
