// Package pipgrab extracts product images, measurements, and materials from
// e-commerce product pages. It fetches a page, selects the high-resolution
// variant of each product image from its srcset candidates, scrapes labeled
// dimension rows and the materials block, and optionally downloads the images.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/).
package pipgrab
