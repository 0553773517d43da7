// internal/lookup/extract-website/config.go
package extractwebsite

const (
	DefaultScanWindow = 1000
)

type Config struct {
	// DetailURL builds the detail-page URL for an entity; injected from the
	// provider profile.
	DetailURL func(entName, entID string) string

	// Marker is the label preceding the website anchor on the detail page.
	Marker string

	// ScanWindow bounds how many bytes after the marker are parsed.
	ScanWindow int
}
