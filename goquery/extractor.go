// Package goquery implements product field extraction over HTML documents
// parsed with github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pipgrab"
)

// Rule extracts one group of product fields from a parsed page.
type Rule struct {
	// Name identifies the rule in tests and diagnostics.
	Name string

	// Fallback rules run only when no earlier rule recorded an image.
	Fallback bool

	// Apply records whatever the rule finds in result.
	// Finding nothing leaves result unchanged.
	Apply func(doc *goquery.Document, result *pipgrab.Result)
}

// DefaultRules returns the product page rules in the order they run.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "main-image", Apply: ExtractMainImage},
		{Name: "measurement-image", Apply: ExtractMeasurementImage},
		{Name: "fallback-images", Fallback: true, Apply: ExtractFallbackImages},
		{Name: "measurements", Apply: ExtractMeasurements},
		{Name: "materials", Apply: ExtractMaterials},
	}
}

// Ensure Extractor implements pipgrab.PageExtractor at compile time.
var _ pipgrab.PageExtractor = (*Extractor)(nil)

// Extractor runs an ordered list of rules over a page.
// Extractor is stateless and safe for concurrent use.
type Extractor struct {
	rules []Rule
}

// NewExtractor creates an Extractor. With no rules it uses DefaultRules.
func NewExtractor(rules ...Rule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Extractor{rules: rules}
}

// Extract parses html and applies each rule in order.
func (e *Extractor) Extract(html string, requestID string) (*pipgrab.Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pipgrab.Errorf(pipgrab.EPARSE, "failed to parse HTML: %v", err)
	}

	result := pipgrab.NewResult(requestID)
	for _, rule := range e.rules {
		if rule.Fallback && len(result.Images) > 0 {
			continue
		}
		rule.Apply(doc, result)
	}
	return result, nil
}

// cleanText trims s and collapses internal whitespace runs to one space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
