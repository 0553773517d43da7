// internal/lookup/resolve-entity/config.go
package resolveentity

type Config struct {
	SearchURL string
	QueryType string
	PageSize  int
}
