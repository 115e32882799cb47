package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pipgrab"
)

// CSS selectors for the dimension list and the product details block.
const (
	DimensionsListSelector = "ul.pip-product-dimensions__dimensions-container"
	DimensionRowSelector   = "li.pip-product-dimensions__measurement-wrapper"
	DimensionNameSelector  = "span.pip-product-dimensions__measurement-name"
	DetailsSelector        = "div.pip-product-details__container"
	DetailsHeadingSelector = "h3, h4"
)

// MaterialsKey is the materials field populated by ExtractMaterials.
const MaterialsKey = "materials"

// ExtractMeasurements records one measurement per labeled dimension row.
// The label is the row's name element without its trailing colon, lower-cased;
// the value is the rest of the row's text.
func ExtractMeasurements(doc *goquery.Document, result *pipgrab.Result) {
	list := doc.Find(DimensionsListSelector).First()
	list.Find(DimensionRowSelector).Each(func(_ int, row *goquery.Selection) {
		name := row.Find(DimensionNameSelector).First()
		if name.Length() == 0 {
			return
		}

		raw := name.Text()
		label := strings.TrimSuffix(strings.TrimSpace(raw), ":")
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			return
		}

		value := row.Text()
		if raw != "" {
			value = strings.ReplaceAll(value, raw, "")
		}

		// Duplicate labels keep the last row.
		result.Measurements[label] = cleanText(value)
	})
}

// ExtractMaterials records the paragraphs following a "material" heading
// in the product details block, up to the next heading of the same or
// higher level.
func ExtractMaterials(doc *goquery.Document, result *pipgrab.Result) {
	details := doc.Find(DetailsSelector).First()
	details.Find(DetailsHeadingSelector).Each(func(_ int, heading *goquery.Selection) {
		if !strings.Contains(strings.ToLower(heading.Text()), "material") {
			return
		}

		level := headingLevel(goquery.NodeName(heading))
		var paragraphs []string
		for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
			name := goquery.NodeName(sib)
			if l := headingLevel(name); l > 0 && l <= level {
				break
			}
			if name != "p" {
				continue
			}
			if text := cleanText(sib.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		}

		if len(paragraphs) > 0 {
			result.Materials[MaterialsKey] = strings.Join(paragraphs, " ")
		}
	})
}

// headingLevel returns 1-6 for h1-h6 and 0 for any other element.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
