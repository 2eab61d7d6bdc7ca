package market

// Profile is the photographer-facing presentation data joined into bid
// views. Stored under the deterministic key profile_<userId> so reads
// are point lookups, not kind scans.
type Profile struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio,omitempty"`
}

type PortfolioItem struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type Portfolio struct {
	UserID      string          `json:"userId"`
	Description string          `json:"description,omitempty"`
	Items       []PortfolioItem `json:"items"`
}

func ProfileKey(userID string) string   { return "profile_" + userID }
func PortfolioKey(userID string) string { return "portfolio_" + userID }
