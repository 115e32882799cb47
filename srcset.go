package pipgrab

import (
	"strconv"
	"strings"
)

// PreferredDescriptor is the width descriptor of the variant the source
// site guarantees to be high resolution and consistently cropped.
const PreferredDescriptor = "900w"

// PreferredMarker is the URL query marker of the extra-large variant.
const PreferredMarker = "f=xl"

// ImageCandidate is one entry of a srcset attribute.
type ImageCandidate struct {
	URL        string
	Descriptor string
	Width      int
}

// ParseCandidates parses a srcset attribute into candidates in input order.
// Segments without both a URL and a descriptor are dropped.
func ParseCandidates(attr string) []ImageCandidate {
	var candidates []ImageCandidate
	for _, segment := range strings.Split(attr, ",") {
		fields := strings.Fields(segment)
		if len(fields) < 2 {
			continue
		}
		candidates = append(candidates, ImageCandidate{
			URL:        fields[0],
			Descriptor: fields[1],
			Width:      descriptorWidth(fields[1]),
		})
	}
	return candidates
}

// SelectPreferred returns the URL of the preferred candidate in attr:
// the first f=xl 900w entry, else the first 900w entry, else the widest
// entry (first occurrence wins ties). Returns false if attr has no
// candidates.
func SelectPreferred(attr string) (string, bool) {
	candidates := ParseCandidates(attr)
	if len(candidates) == 0 {
		return "", false
	}

	for _, c := range candidates {
		if c.Descriptor == PreferredDescriptor && strings.Contains(c.URL, PreferredMarker) {
			return c.URL, true
		}
	}

	for _, c := range candidates {
		if c.Descriptor == PreferredDescriptor {
			return c.URL, true
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Width > best.Width {
			best = c
		}
	}
	return best.URL, true
}

// descriptorWidth returns the first run of digits in a descriptor, or 0.
func descriptorWidth(descriptor string) int {
	start := strings.IndexAny(descriptor, "0123456789")
	if start < 0 {
		return 0
	}
	end := start
	for end < len(descriptor) && descriptor[end] >= '0' && descriptor[end] <= '9' {
		end++
	}
	width, err := strconv.Atoi(descriptor[start:end])
	if err != nil {
		return 0
	}
	return width
}
