package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/metrics"
	"shutterbid/internal/repository"

	"github.com/google/uuid"
)

type CreateBidInput struct {
	JobID    string
	Price    float64
	Proposal string
}

type BidUsecase interface {
	Create(ctx context.Context, ident market.Identity, in CreateBidInput) (market.Bid, error)
}

type BidService struct {
	store   repository.RecordStore
	metrics *metrics.Collector
	logger  *log.Logger

	// requireOpenJob turns on the job-existence check at submission time.
	// The historical behavior leaves it off and tolerates orphan bids.
	requireOpenJob bool

	now func() time.Time
}

func NewBidService(store repository.RecordStore, collector *metrics.Collector, logger *log.Logger, requireOpenJob bool) *BidService {
	return &BidService{
		store:          store,
		metrics:        collector,
		logger:         logger,
		requireOpenJob: requireOpenJob,
		now:            time.Now,
	}
}

func (s *BidService) Create(ctx context.Context, ident market.Identity, in CreateBidInput) (market.Bid, error) {
	if ident.Role != market.RolePhotographer {
		return market.Bid{}, ErrNotAllowed
	}

	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return market.Bid{}, validationf("jobId is required")
	}
	if in.Price <= 0 {
		return market.Bid{}, validationf("price must be a positive number")
	}
	proposal := strings.TrimSpace(in.Proposal)
	if proposal == "" {
		return market.Bid{}, validationf("proposal is required")
	}

	if s.requireOpenJob {
		if err := s.checkJobOpen(ctx, jobID); err != nil {
			return market.Bid{}, err
		}
	}

	bid := market.Bid{
		ID:             uuid.NewString(),
		JobID:          jobID,
		VideographerID: ident.SubjectID(),
		Price:          in.Price,
		Proposal:       proposal,
		Status:         market.BidPending,
		CreatedAt:      s.now().UTC(),
	}

	rec, err := repository.NewRecord(bid.ID, market.KindBid, bid)
	if err != nil {
		return market.Bid{}, storageErr(err)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return market.Bid{}, storageErr(err)
	}

	s.metrics.RecordBidCreated()
	return bid, nil
}

func (s *BidService) checkJobOpen(ctx context.Context, jobID string) error {
	rec, err := s.store.Get(ctx, jobID)
	if err != nil {
		if err == repository.ErrRecordNotFound {
			return ErrNotFound
		}
		return storageErr(err)
	}
	if rec.Kind != market.KindJob {
		return ErrNotFound
	}

	var job market.Job
	if err := rec.Decode(&job); err != nil {
		return storageErr(err)
	}
	if job.Status != market.JobOpen || job.Overdue(s.now()) {
		return validationf("job is no longer open for bids")
	}
	return nil
}
