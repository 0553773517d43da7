// internal/lookup/query-equity/config.go
package queryequity

type Config struct {
	GraphURL string
	DataType string
}
