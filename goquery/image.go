package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pipgrab"
)

// CSS selectors for product image containers.
const (
	MainImageSelector        = `div[data-type="MAIN_PRODUCT_IMAGE"] img.pip-image`
	MeasurementImageSelector = `div[data-type="MEASUREMENT_ILLUSTRATION"] img.pip-image`
	SrcsetImageSelector      = `img[srcset]`
)

// ExtractMainImage records the main product image.
func ExtractMainImage(doc *goquery.Document, result *pipgrab.Result) {
	extractContainerImage(doc, result, MainImageSelector, pipgrab.ImageMain)
}

// ExtractMeasurementImage records the measurement illustration.
func ExtractMeasurementImage(doc *goquery.Document, result *pipgrab.Result) {
	extractContainerImage(doc, result, MeasurementImageSelector, pipgrab.ImageMeasurement)
}

func extractContainerImage(doc *goquery.Document, result *pipgrab.Result, selector string, imageType pipgrab.ImageType) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return
	}

	srcset := sel.AttrOr("srcset", "")
	if srcset == "" {
		return
	}

	url, ok := pipgrab.SelectPreferred(srcset)
	if !ok {
		return
	}

	result.AddImage(&pipgrab.Image{
		ID:   result.ImageID(string(imageType)),
		URL:  url,
		Alt:  sel.AttrOr("alt", ""),
		Type: imageType,
	})
}

// ExtractFallbackImages records every image with a srcset attribute,
// classifying each by the markup around it. IDs carry the image's
// position among all srcset images so they never collide.
func ExtractFallbackImages(doc *goquery.Document, result *pipgrab.Result) {
	doc.Find(SrcsetImageSelector).Each(func(i int, sel *goquery.Selection) {
		url, ok := pipgrab.SelectPreferred(sel.AttrOr("srcset", ""))
		if !ok {
			return
		}

		imageType := ClassifyImage(sel)
		result.AddImage(&pipgrab.Image{
			ID:   result.ImageID(fmt.Sprintf("%s-%d", imageType, i)),
			URL:  url,
			Alt:  sel.AttrOr("alt", ""),
			Type: imageType,
		})
	})
}

// ClassifyImage inspects the markup of the image's grandparent element.
// Markup mentioning "main" (case-insensitive) marks a main image; markup
// mentioning "measurement" marks a measurement image; anything else is
// unknown.
func ClassifyImage(img *goquery.Selection) pipgrab.ImageType {
	ancestor := img.Parent().Parent()
	if ancestor.Length() == 0 {
		return pipgrab.ImageUnknown
	}

	markup, err := goquery.OuterHtml(ancestor)
	if err != nil {
		return pipgrab.ImageUnknown
	}
	markup = strings.ToLower(markup)

	switch {
	case strings.Contains(markup, "main"):
		return pipgrab.ImageMain
	case strings.Contains(markup, "measurement"):
		return pipgrab.ImageMeasurement
	}
	return pipgrab.ImageUnknown
}
