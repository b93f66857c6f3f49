package models

// Team represents an NFL franchise as seen through the pick ledger
type Team struct {
	Name    string   `json:"name"`
	Abbr    string   `json:"abbr"`
	LogoURL string   `json:"logo_url,omitempty"`
	Needs   []string `json:"needs"`
}
