// internal/lookup/query-equity/models.go
package queryequity

// graphRequest asks for the non-expanded "entity invests in" graph.
type graphRequest struct {
	EntID    string `json:"entid"`
	DataType string `json:"dataType"`
	IsExpand int    `json:"isExpand"`
}

type graphResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Children []graphChild `json:"children"`
	} `json:"data"`
}

type graphChild struct {
	EntName     string `json:"entname"`
	EntID       string `json:"entid"`
	FundedRatio string `json:"fundedRatio"`
}
