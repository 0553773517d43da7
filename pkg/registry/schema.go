// pkg/registry/schema.go
package registry

// ProviderProfile describes the upstream registry vendor contract: endpoint
// paths, fixed query constants, and the detail-page scrape parameters. The
// profile is data, not code, so a vendor path or marker change is a config
// edit rather than a rebuild.
type ProviderProfile struct {
	Name               string `json:"name"`
	BaseURL            string `json:"baseUrl"`
	SearchPath         string `json:"searchPath"`
	GraphPath          string `json:"graphPath"`
	DetailPathTemplate string `json:"detailPathTemplate"` // two %s verbs: escaped name, raw id
	SearchQueryType    string `json:"searchQueryType"`
	GraphDataType      string `json:"graphDataType"`
	PageSize           int    `json:"pageSize"`
	WebsiteMarker      string `json:"websiteMarker"`
	ScanWindow         int    `json:"scanWindow"`
}

// profileSchema is the JSON schema a provider profile must satisfy.
const profileSchema = `{
  "type": "object",
  "required": ["name", "baseUrl", "searchPath", "graphPath", "detailPathTemplate", "websiteMarker"],
  "additionalProperties": false,
  "properties": {
    "name":               {"type": "string", "minLength": 1},
    "baseUrl":            {"type": "string", "pattern": "^https?://"},
    "searchPath":         {"type": "string", "pattern": "^/"},
    "graphPath":          {"type": "string", "pattern": "^/"},
    "detailPathTemplate": {"type": "string", "pattern": "^/"},
    "searchQueryType":    {"type": "string"},
    "graphDataType":      {"type": "string"},
    "pageSize":           {"type": "integer", "minimum": 1, "maximum": 100},
    "websiteMarker":      {"type": "string", "minLength": 1},
    "scanWindow":         {"type": "integer", "minimum": 1}
  }
}`
