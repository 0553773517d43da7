// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provider.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidProfile(t *testing.T) {
	path := writeProfile(t, `{
		"name": "riskbird",
		"baseUrl": "https://www.riskbird.com",
		"searchPath": "/riskbird-api/newSearch",
		"graphPath": "/riskbird-api/graphics/query",
		"detailPathTemplate": "/ent/%s.html?entid=%s",
		"websiteMarker": "官网： <div ",
		"pageSize": 10,
		"scanWindow": 1000
	}`)

	profile, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "riskbird", profile.Name)
	assert.Equal(t, "https://www.riskbird.com/riskbird-api/newSearch", profile.SearchURL())
	assert.Equal(t, "https://www.riskbird.com/riskbird-api/graphics/query", profile.GraphURL())
	// Defaults fill unsupplied fields.
	assert.Equal(t, "1", profile.SearchQueryType)
	assert.Equal(t, "entInvest", profile.GraphDataType)
}

func TestLoad_RejectsInvalidProfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing required fields", `{"name": "x"}`},
		{"bad base url", `{
			"name": "x", "baseUrl": "ftp://nope", "searchPath": "/s",
			"graphPath": "/g", "detailPathTemplate": "/d/%s/%s", "websiteMarker": "m"
		}`},
		{"unknown field", `{
			"name": "x", "baseUrl": "https://x.example", "searchPath": "/s",
			"graphPath": "/g", "detailPathTemplate": "/d/%s/%s", "websiteMarker": "m",
			"retries": 3
		}`},
		{"not json", `marker: yes`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProfile(t, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDetailURL_EscapesName(t *testing.T) {
	p := Default()
	url := p.DetailURL("某某科技 有限公司", "8888")
	assert.Contains(t, url, "https://www.riskbird.com/ent/")
	assert.Contains(t, url, "entid=8888")
	assert.NotContains(t, url, " ", "entity name must be URL-escaped")
}
