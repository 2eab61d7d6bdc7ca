package dto

import (
	"time"

	"shutterbid/internal/domain/market"
)

// PhotographerRef is the reduced photographer projection embedded in the
// customer's bid listing.
type PhotographerRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

// CustomerJobRef is the job projection a customer sees next to each bid.
type CustomerJobRef struct {
	ID            string              `json:"id"`
	Description   string              `json:"description"`
	City          string              `json:"city"`
	Services      []market.ServiceTag `json:"services"`
	Status        market.JobStatus    `json:"status"`
	BudgetMin     *float64            `json:"budgetMin"`
	BudgetMax     *float64            `json:"budgetMax"`
	BudgetUnknown bool                `json:"budgetUnknown"`
	Date          string              `json:"date,omitempty"`
	DateRange     *market.DateRange   `json:"dateRange,omitempty"`
}

type CustomerBidItem struct {
	ID             string           `json:"id"`
	JobID          string           `json:"jobId"`
	VideographerID string           `json:"videographerId"`
	Price          float64          `json:"price"`
	Proposal       string           `json:"proposal"`
	Status         market.BidStatus `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	Job            *CustomerJobRef  `json:"job"`
	Photographer   *PhotographerRef `json:"photographer"`
}

// PhotographerJobRef is the job projection in the photographer's own bid
// listing. budget_min/budget_max duplicate budgetMin/budgetMax for older
// mobile clients and must stay.
type PhotographerJobRef struct {
	ID              string              `json:"id"`
	Description     string              `json:"description"`
	City            string              `json:"city"`
	Area            string              `json:"area,omitempty"`
	Services        []market.ServiceTag `json:"services"`
	Status          market.JobStatus    `json:"status"`
	BudgetMin       *float64            `json:"budgetMin"`
	BudgetMax       *float64            `json:"budgetMax"`
	BudgetMinLegacy *float64            `json:"budget_min"`
	BudgetMaxLegacy *float64            `json:"budget_max"`
	BudgetUnknown   bool                `json:"budgetUnknown"`
	Date            string              `json:"date,omitempty"`
	DateRange       *market.DateRange   `json:"dateRange,omitempty"`
	Duration        string              `json:"duration"`
	Difficulty      market.Difficulty   `json:"difficulty"`
}

type PhotographerBidItem struct {
	ID        string              `json:"id"`
	JobID     string              `json:"jobId"`
	Price     float64             `json:"price"`
	Proposal  string              `json:"proposal"`
	Status    market.BidStatus    `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Job       *PhotographerJobRef `json:"job"`
}

func NewCustomerJobRef(j *market.Job) *CustomerJobRef {
	if j == nil {
		return nil
	}
	return &CustomerJobRef{
		ID:            j.ID,
		Description:   j.Description,
		City:          j.City,
		Services:      j.Services,
		Status:        j.Status,
		BudgetMin:     j.BudgetMin,
		BudgetMax:     j.BudgetMax,
		BudgetUnknown: j.BudgetUnknown,
		Date:          j.Date,
		DateRange:     j.DateRange,
	}
}

func NewPhotographerJobRef(j *market.Job) *PhotographerJobRef {
	if j == nil {
		return nil
	}
	return &PhotographerJobRef{
		ID:              j.ID,
		Description:     j.Description,
		City:            j.City,
		Area:            j.Area,
		Services:        j.Services,
		Status:          j.Status,
		BudgetMin:       j.BudgetMin,
		BudgetMax:       j.BudgetMax,
		BudgetMinLegacy: j.BudgetMin,
		BudgetMaxLegacy: j.BudgetMax,
		BudgetUnknown:   j.BudgetUnknown,
		Date:            j.Date,
		DateRange:       j.DateRange,
		Duration:        j.Duration,
		Difficulty:      j.Difficulty,
	}
}

func NewPhotographerRef(p *market.Profile) *PhotographerRef {
	if p == nil {
		return nil
	}
	return &PhotographerRef{
		ID:             p.UserID,
		Name:           p.Name,
		ProfilePicture: p.ProfilePicture,
	}
}
