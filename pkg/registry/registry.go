// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Default returns the built-in riskbird profile, used when no registry file
// is configured.
func Default() *ProviderProfile {
	return &ProviderProfile{
		Name:               "riskbird",
		BaseURL:            "https://www.riskbird.com",
		SearchPath:         "/riskbird-api/newSearch",
		GraphPath:          "/riskbird-api/graphics/query",
		DetailPathTemplate: "/ent/%s.html?entid=%s",
		SearchQueryType:    "1",
		GraphDataType:      "entInvest",
		PageSize:           10,
		WebsiteMarker:      "官网： <div ",
		ScanWindow:         1000,
	}
}

// Load reads and validates a provider profile from path. Fields the file
// omits fall back to the defaults.
func Load(path string) (*ProviderProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read provider registry %s: %w", path, err)
	}

	if err := validate(data); err != nil {
		return nil, fmt.Errorf("provider registry %s: %w", path, err)
	}

	profile := Default()
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse provider registry %s: %w", path, err)
	}

	return profile, nil
}

func validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid profile: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// SearchURL is the entity search endpoint.
func (p *ProviderProfile) SearchURL() string {
	return p.BaseURL + p.SearchPath
}

// GraphURL is the investment-graph endpoint.
func (p *ProviderProfile) GraphURL() string {
	return p.BaseURL + p.GraphPath
}

// DetailURL builds the entity detail-page URL. The entity name is
// URL-escaped; the id is passed through raw.
func (p *ProviderProfile) DetailURL(entName, entID string) string {
	path := fmt.Sprintf(p.DetailPathTemplate, url.PathEscape(entName), entID)
	return p.BaseURL + path
}
