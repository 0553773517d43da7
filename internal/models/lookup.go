// internal/models/lookup.go
package models

// Entity identifies a company within the external business registry.
type Entity struct {
	Name string `json:"entName"`
	ID   string `json:"entid"`
}

// ChildInvestment is one equity investment of a parent entity. Website is
// filled in by the fan-out stage; WebsiteFound distinguishes "no website
// listed" from an empty string.
type ChildInvestment struct {
	Entity           Entity `json:"entity"`
	OwnershipPercent int    `json:"ownershipPercent"`
	Website          string `json:"website,omitempty"`
	WebsiteFound     bool   `json:"websiteFound"`
}

// LookupResult is the outcome of one search key. ParentFound is false when
// the registry returned no match; the result still appears in the report.
type LookupResult struct {
	SearchKey       string            `json:"searchKey"`
	ParentName      string            `json:"parentName,omitempty"`
	ParentFound     bool              `json:"parentFound"`
	OfficialWebsite string            `json:"officialWebsite,omitempty"`
	Children        []ChildInvestment `json:"children"`
}
