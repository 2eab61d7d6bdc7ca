package market

import "time"

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Bid is a photographer's offer against a job. The job reference is not
// enforced by the store; its validity is checked at resolution time.
type Bid struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	VideographerID string    `json:"videographerId"`
	Price          float64   `json:"price"`
	Proposal       string    `json:"proposal"`
	Status         BidStatus `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`

	// LegacyBidID carries the bidId field some early records were written
	// with. Lookups match either key.
	LegacyBidID string `json:"bidId,omitempty"`
}

// Matches reports whether this bid is identified by the given id,
// honoring the legacy key.
func (b Bid) Matches(id string) bool {
	return b.ID == id || (b.LegacyBidID != "" && b.LegacyBidID == id)
}
