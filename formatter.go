package pipgrab

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Messages shown when a section of the summary is empty.
const (
	NoImagesMessage       = "No images found."
	NoMeasurementsMessage = "No measurements found."
	NoMaterialsMessage    = "No materials information found."
)

// FormatMarkdown renders a result as a markdown summary with image,
// measurement, and material sections. Labels are title-cased and sorted.
func FormatMarkdown(r *Result) string {
	var b strings.Builder

	b.WriteString("## Images\n\n")
	ids := r.ImageIDs()
	if len(ids) == 0 {
		b.WriteString(NoImagesMessage + "\n")
	}
	for _, id := range ids {
		img := r.Images[id]
		b.WriteString("- " + img.URL)
		if img.Path != "" {
			b.WriteString(" (" + img.Path + ")")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Measurements\n\n")
	b.WriteString(formatFields(r.Measurements, NoMeasurementsMessage))

	b.WriteString("\n## Materials\n\n")
	b.WriteString(formatFields(r.Materials, NoMaterialsMessage))

	return b.String()
}

func formatFields(fields map[string]string, empty string) string {
	if len(fields) == 0 {
		return empty + "\n"
	}

	labels := make([]string, 0, len(fields))
	for label := range fields {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	title := cases.Title(language.Und)
	var b strings.Builder
	for _, label := range labels {
		b.WriteString("- **" + title.String(label) + "**: " + fields[label] + "\n")
	}
	return b.String()
}
