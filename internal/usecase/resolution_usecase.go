package usecase

import (
	"context"
	"log"
	"time"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/metrics"
	"shutterbid/internal/repository"
)

// ResolutionUsecase applies a customer's accept/reject decision to one
// bid and keeps the at-most-one-accepted-bid-per-job invariant.
type ResolutionUsecase interface {
	Resolve(ctx context.Context, ident market.Identity, bidID string, target market.BidStatus) error
}

type ResolutionService struct {
	store   repository.RecordStore
	cache   JobCache
	metrics *metrics.Collector
	logger  *log.Logger
	now     func() time.Time
}

func NewResolutionService(store repository.RecordStore, cache JobCache, collector *metrics.Collector, logger *log.Logger) *ResolutionService {
	return &ResolutionService{
		store:   store,
		cache:   cache,
		metrics: collector,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve finds the bid, verifies the owning job belongs to the caller,
// and applies the decision.
//
// The lookup goes caller-first: the job is searched among the caller's
// own jobs only, so a customer probing with someone else's bid id gets
// the same "not found" as for a bid that does not exist.
//
// Acceptance is linearized on a conditional write of the job's status
// (open -> accepted). Only the winner of that write marks the bid and
// cascades rejection over the pending siblings; a loser gets
// ErrConflict and mutates nothing. A store failure during the cascade
// aborts the remaining siblings but the already-committed decision on
// the target bid stands; there is no compensating rollback.
func (s *ResolutionService) Resolve(ctx context.Context, ident market.Identity, bidID string, target market.BidStatus) error {
	if ident.Role != market.RoleCustomer {
		return ErrNotAllowed
	}
	if target != market.BidAccepted && target != market.BidRejected {
		return validationf("status must be either accepted or rejected")
	}

	bids, err := s.allBids(ctx)
	if err != nil {
		return err
	}

	bid, ok := findBid(bids, bidID)
	if !ok {
		return ErrNotFound
	}

	job, ok, err := s.ownedJob(ctx, ident, bid.JobID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	// The owned-job scan above already restricts to the caller; this
	// re-check is deliberate defense in depth before any mutation.
	if job.CustomerID != ident.SubjectID() {
		return ErrNotAllowed
	}

	if target == market.BidAccepted {
		return s.accept(ctx, job, bid, bids)
	}
	return s.reject(ctx, bid)
}

func (s *ResolutionService) accept(ctx context.Context, job market.Job, bid market.Bid, bids []market.Bid) error {
	swapped, err := s.store.CompareAndSwapStatus(ctx, job.ID, market.KindJob, string(market.JobOpen), string(market.JobAccepted))
	if err != nil {
		return storageErr(err)
	}
	if !swapped {
		return ErrConflict
	}
	s.invalidateListCache(ctx)

	if err := s.writeBidStatus(ctx, bid, market.BidAccepted); err != nil {
		// The job is already marked accepted; surfacing the failure is
		// all we can do without multi-record transactions.
		s.logf("[Resolver] job %s accepted but bid %s not marked: %v", job.ID, bid.ID, err)
		return err
	}
	s.metrics.RecordBidResolved(string(market.BidAccepted))

	rejected := 0
	for _, sibling := range bids {
		if sibling.ID == bid.ID || sibling.JobID != job.ID {
			continue
		}
		if sibling.Status != market.BidPending {
			// Already-resolved siblings are left untouched.
			continue
		}
		if err := s.writeBidStatus(ctx, sibling, market.BidRejected); err != nil {
			s.metrics.RecordCascadeRejections(rejected)
			s.logf("[Resolver] cascade aborted after %d rejections on job %s: %v", rejected, job.ID, err)
			return err
		}
		rejected++
	}

	s.metrics.RecordCascadeRejections(rejected)
	return nil
}

// reject is a permissive idempotent overwrite: re-rejecting a resolved
// bid is allowed and the job record is not touched.
func (s *ResolutionService) reject(ctx context.Context, bid market.Bid) error {
	if err := s.writeBidStatus(ctx, bid, market.BidRejected); err != nil {
		return err
	}
	s.metrics.RecordBidResolved(string(market.BidRejected))
	return nil
}

func (s *ResolutionService) writeBidStatus(ctx context.Context, bid market.Bid, status market.BidStatus) error {
	bid.Status = status
	rec, err := repository.NewRecord(bid.ID, market.KindBid, bid)
	if err != nil {
		return storageErr(err)
	}
	if err := s.store.Update(ctx, rec); err != nil {
		if err == repository.ErrRecordNotFound {
			return ErrNotFound
		}
		return storageErr(err)
	}
	return nil
}

func (s *ResolutionService) allBids(ctx context.Context) ([]market.Bid, error) {
	recs, err := s.store.ListByKind(ctx, market.KindBid)
	if err != nil {
		return nil, storageErr(err)
	}

	bids := make([]market.Bid, 0, len(recs))
	for _, rec := range recs {
		var b market.Bid
		if err := rec.Decode(&b); err != nil {
			s.logf("[Resolver] skipping undecodable bid record %s: %v", rec.ID, err)
			continue
		}
		if b.ID == "" {
			b.ID = rec.ID
		}
		bids = append(bids, b)
	}
	return bids, nil
}

// ownedJob scans the caller's jobs for the given id. The scan-and-filter
// shape mirrors the secondary-index design: no point read is attempted
// before ownership is established.
func (s *ResolutionService) ownedJob(ctx context.Context, ident market.Identity, jobID string) (market.Job, bool, error) {
	recs, err := s.store.ListByKind(ctx, market.KindJob)
	if err != nil {
		return market.Job{}, false, storageErr(err)
	}

	for _, rec := range recs {
		var job market.Job
		if err := rec.Decode(&job); err != nil {
			s.logf("[Resolver] skipping undecodable job record %s: %v", rec.ID, err)
			continue
		}
		if job.CustomerID != ident.SubjectID() {
			continue
		}
		if job.ID == jobID {
			return job, true, nil
		}
	}
	return market.Job{}, false, nil
}

func findBid(bids []market.Bid, bidID string) (market.Bid, bool) {
	for _, b := range bids {
		if b.Matches(bidID) {
			return b, true
		}
	}
	return market.Bid{}, false
}

func (s *ResolutionService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, jobsListCacheKey); err != nil {
		s.logf("[Resolver] cache invalidation failed: %v", err)
	}
}

func (s *ResolutionService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
