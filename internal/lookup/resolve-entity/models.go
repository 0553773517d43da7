// internal/lookup/resolve-entity/models.go
package resolveentity

// searchRequest is the fixed query shape: query type 1, first page of 10.
type searchRequest struct {
	QueryType           string `json:"queryType"`
	SearchKey           string `json:"searchKey"`
	PageNo              int    `json:"pageNo"`
	Range               int    `json:"range"`
	SelectConditionData string `json:"selectConditionData"`
}

type searchResponse struct {
	Data *struct {
		List []searchHit `json:"list"`
	} `json:"data"`
}

type searchHit struct {
	EntName string `json:"entName"`
	EntID   string `json:"entid"`
}
