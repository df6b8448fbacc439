// Package extract locates a phone number in a page using escalating strategies:
// class-marked markup, a regex scan over the raw HTML, and finally a rendered
// page where the number only appears after a click.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/phonecrawl/internal/engine"
	"github.com/law-makers/phonecrawl/internal/metrics"
	"github.com/law-makers/phonecrawl/internal/phone"
	"github.com/law-makers/phonecrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// MarkupSelector matches elements whose class attribute contains "phone"
const MarkupSelector = `[class*="phone"]`

// Fallback is the page rendered when neither markup nor raw HTML contain a number.
// It is a fixed target and is not derived from the page being extracted.
type Fallback struct {
	URL      string
	Selector string
}

// Extractor implements engine.Extractor
type Extractor struct {
	renderer engine.Renderer
	fallback Fallback
}

// New creates an Extractor. renderer may be nil, in which case pages that need
// the render tier fail with engine.ErrNoPhone.
func New(renderer engine.Renderer, fallback Fallback) *Extractor {
	return &Extractor{renderer: renderer, fallback: fallback}
}

// Extract runs the tiers in order and returns the first normalized phone number
func (e *Extractor) Extract(ctx context.Context, content string) (models.Extraction, error) {
	if digits, ok := fromMarkup(content); ok {
		return e.found(digits, models.TierMarkup), nil
	}

	if match, ok := phone.FindFirst(content); ok {
		if digits, ok := phone.Normalize(match); ok {
			return e.found(digits, models.TierRegex), nil
		}
	}

	return e.fromRender(ctx)
}

// fromMarkup normalizes the text of the first class-marked element
func fromMarkup(content string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		log.Debug().Err(err).Msg("Failed to parse page, skipping markup lookup")
		return "", false
	}

	sel := doc.Find(MarkupSelector).First()
	if sel.Length() == 0 {
		return "", false
	}

	return phone.Normalize(sel.Text())
}

func (e *Extractor) fromRender(ctx context.Context) (models.Extraction, error) {
	if e.renderer == nil || e.fallback.URL == "" {
		metrics.ObserveExtract(models.TierNone.String())
		return models.Extraction{}, engine.NewEngineError(engine.ErrCodeNoPhone, "render fallback not configured", engine.ErrNoPhone)
	}

	log.Debug().
		Str("url", e.fallback.URL).
		Str("selector", e.fallback.Selector).
		Msg("No phone in page source, falling back to rendered page")

	source, err := e.renderer.Render(ctx, e.fallback.URL, e.fallback.Selector)
	if err != nil {
		metrics.ObserveExtract(models.TierNone.String())
		return models.Extraction{}, fmt.Errorf("render fallback %s: %w", e.fallback.URL, err)
	}

	match, ok := phone.FindFirst(source)
	if !ok {
		metrics.ObserveExtract(models.TierNone.String())
		return models.Extraction{}, engine.NewEngineError(engine.ErrCodeNoPhone, "all extraction tiers exhausted", engine.ErrNoPhone).
			WithDetail("fallback_url", e.fallback.URL)
	}

	// A regex match always carries digits
	digits, _ := phone.Normalize(match)
	return e.found(digits, models.TierRender), nil
}

func (e *Extractor) found(digits string, tier models.Tier) models.Extraction {
	metrics.ObserveExtract(tier.String())
	return models.Extraction{Phone: digits, Tier: tier}
}
