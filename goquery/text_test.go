package goquery_test

import (
	"testing"

	"github.com/fwojciec/pipgrab"
	"github.com/fwojciec/pipgrab/goquery"
	"github.com/stretchr/testify/assert"
)

func dimensions(rows string) string {
	return `<ul class="pip-product-dimensions__dimensions-container">` + rows + `</ul>`
}

func details(body string) string {
	return `<div class="pip-product-details__container">` + body + `</div>`
}

func TestExtractMeasurements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want map[string]string
	}{
		{
			name: "strips colon and lower-cases label",
			html: dimensions(`<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name">Max. Load:</span> 100 kg</li>`),
			want: map[string]string{"max. load": "100 kg"},
		},
		{
			name: "collapses whitespace across nested value markup",
			html: dimensions(`<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name">Width:</span>
  40 <b>cm</b></li>`),
			want: map[string]string{"width": "40 cm"},
		},
		{
			name: "last duplicate label wins",
			html: dimensions(`<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name">Depth:</span> 20 cm</li>
<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name">Depth:</span> 25 cm</li>`),
			want: map[string]string{"depth": "25 cm"},
		},
		{
			name: "skips rows without a usable label",
			html: dimensions(`<li class="pip-product-dimensions__measurement-wrapper">no label 10 cm</li>
<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name"> : </span> 5 cm</li>`),
			want: map[string]string{},
		},
		{
			name: "only reads the first dimensions list",
			html: dimensions(`<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name">Height:</span> 28 cm</li>`) +
				dimensions(`<li class="pip-product-dimensions__measurement-wrapper"><span class="pip-product-dimensions__measurement-name">Volume:</span> 6 l</li>`),
			want: map[string]string{"height": "28 cm"},
		},
		{
			name: "no dimensions list",
			html: `<p>Height: 28 cm</p>`,
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := pipgrab.NewResult("req")
			goquery.ExtractMeasurements(mustParse(t, tt.html), result)

			assert.Equal(t, tt.want, result.Measurements)
		})
	}
}

func TestExtractMaterials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want map[string]string
	}{
		{
			name: "stops at next heading of the same level",
			html: details(`<h4>Materials</h4><p>Steel</p><p>Epoxy coating</p><h4>Care</h4><p>Wipe clean.</p>`),
			want: map[string]string{goquery.MaterialsKey: "Steel Epoxy coating"},
		},
		{
			name: "continues past lower-level subheadings",
			html: details(`<h3>Materials and environment</h3><h4>Frame</h4><p>Birch veneer</p><h4>Cushion</h4><p>Polyurethane foam</p><h3>Care</h3><p>Vacuum.</p>`),
			want: map[string]string{goquery.MaterialsKey: "Birch veneer Polyurethane foam"},
		},
		{
			name: "skips empty paragraphs and other elements",
			html: details(`<h3>MATERIAL</h3><p>  </p><div>not a paragraph</div><p>Polypropylene</p>`),
			want: map[string]string{goquery.MaterialsKey: "Polypropylene"},
		},
		{
			name: "heading without paragraphs leaves materials empty",
			html: details(`<h3>Materials</h3><h3>Care</h3><p>Wipe clean.</p>`),
			want: map[string]string{},
		},
		{
			name: "ignores material headings outside the details block",
			html: `<h3>Materials</h3><p>Steel</p>`,
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := pipgrab.NewResult("req")
			goquery.ExtractMaterials(mustParse(t, tt.html), result)

			assert.Equal(t, tt.want, result.Materials)
		})
	}
}
