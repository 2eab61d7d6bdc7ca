package market

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobOpen     JobStatus = "open"
	JobAccepted JobStatus = "accepted"
	JobExpired  JobStatus = "expired"
)

// ServiceTag identifies one of the bookable service categories. The
// values are the Finnish labels the product launched with and are part
// of the wire format.
type ServiceTag string

const (
	ServicePhoto      ServiceTag = "valokuvat"
	ServiceVideo      ServiceTag = "videokuvaus"
	ServiceDrone      ServiceTag = "dronekuvaus"
	ServiceShortVideo ServiceTag = "lyhytvideot"
	ServiceEditing    ServiceTag = "editointi"
)

func ValidServiceTag(t ServiceTag) bool {
	switch t {
	case ServicePhoto, ServiceVideo, ServiceDrone, ServiceShortVideo, ServiceEditing:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDemanding Difficulty = "demanding"
)

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDemanding:
		return true
	default:
		return false
	}
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Job is a customer's request for photography or videography work.
//
// The per-service detail blocks are raw JSON by design: their shape is
// owned by the frontend forms. Each block is non-null only when the
// owning service tag is selected; an explicit null tells readers "not
// applicable" rather than "not yet filled in", so none of them carries
// omitempty.
type Job struct {
	ID         string       `json:"id"`
	CustomerID string       `json:"customerId"`
	Services   []ServiceTag `json:"services"`

	City         string `json:"city"`
	Area         string `json:"area,omitempty"`
	ExactAddress string `json:"exactAddress,omitempty"`
	Radius       int    `json:"radius"`

	Date      string     `json:"date,omitempty"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	Duration  string     `json:"duration"`

	BudgetMin     *float64 `json:"budgetMin"`
	BudgetMax     *float64 `json:"budgetMax"`
	BudgetUnknown bool     `json:"budgetUnknown"`

	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`

	PhotoDetails      json.RawMessage `json:"photoDetails"`
	VideoDetails      json.RawMessage `json:"videoDetails"`
	DroneDetails      json.RawMessage `json:"droneDetails"`
	ShortVideoDetails json.RawMessage `json:"shortVideoDetails"`
	EditingDetails    json.RawMessage `json:"editingDetails"`

	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (j Job) HasService(tag ServiceTag) bool {
	for _, s := range j.Services {
		if s == tag {
			return true
		}
	}
	return false
}

// Overdue reports whether an open job has passed its expiry. Expiry is
// a read-time view for listings; the sweeper persists it eventually.
func (j Job) Overdue(now time.Time) bool {
	return j.Status == JobOpen && j.ExpiresAt.Before(now)
}
