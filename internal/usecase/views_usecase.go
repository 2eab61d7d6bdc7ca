package usecase

import (
	"context"
	"log"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/repository"
)

// EnrichedBid is a bid joined with its job and the bidder's profile.
// Either join side may be missing: a deleted job leaves Job nil, a
// failed or absent profile lookup leaves Photographer nil. Callers must
// not assume any ordering; results follow the index scan.
type EnrichedBid struct {
	Bid          market.Bid
	Job          *market.Job
	Photographer *market.Profile
}

// ViewsUsecase reconstructs the customer- and photographer-facing bid
// listings by scatter-gather over the kind index and in-memory joins.
// The store has no joins, so every call pays an O(N) scan per kind; that
// is the accepted cost of the single-table design.
type ViewsUsecase interface {
	BidsForCustomer(ctx context.Context, ident market.Identity) ([]EnrichedBid, error)
	BidsForPhotographer(ctx context.Context, ident market.Identity) ([]EnrichedBid, error)
}

type ViewsService struct {
	store  repository.RecordStore
	logger *log.Logger
}

func NewViewsService(store repository.RecordStore, logger *log.Logger) *ViewsService {
	return &ViewsService{store: store, logger: logger}
}

// BidsForCustomer lists every bid placed on the caller's jobs, enriched
// with the job and the bidder's profile. A profile fetch failure is
// absorbed as "no profile" rather than failing the listing.
func (s *ViewsService) BidsForCustomer(ctx context.Context, ident market.Identity) ([]EnrichedBid, error) {
	if ident.Role != market.RoleCustomer {
		return nil, ErrNotAllowed
	}

	bids, err := s.decodeBids(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.decodeJobs(ctx)
	if err != nil {
		return nil, err
	}

	ownedJobs := make(map[string]market.Job)
	for _, job := range jobs {
		if job.CustomerID == ident.SubjectID() {
			ownedJobs[job.ID] = job
		}
	}

	profiles := make(map[string]*market.Profile)
	out := make([]EnrichedBid, 0, len(bids))
	for _, bid := range bids {
		job, ok := ownedJobs[bid.JobID]
		if !ok {
			continue
		}
		jobCopy := job

		out = append(out, EnrichedBid{
			Bid:          bid,
			Job:          &jobCopy,
			Photographer: s.profileFor(ctx, profiles, bid.VideographerID),
		})
	}
	return out, nil
}

// BidsForPhotographer lists the caller's own bids joined with a job
// projection; a bid whose job was deleted keeps Job nil.
func (s *ViewsService) BidsForPhotographer(ctx context.Context, ident market.Identity) ([]EnrichedBid, error) {
	if ident.Role != market.RolePhotographer {
		return nil, ErrNotAllowed
	}

	bids, err := s.decodeBids(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.decodeJobs(ctx)
	if err != nil {
		return nil, err
	}

	jobsByID := make(map[string]market.Job, len(jobs))
	for _, job := range jobs {
		jobsByID[job.ID] = job
	}

	out := make([]EnrichedBid, 0)
	for _, bid := range bids {
		if bid.VideographerID != ident.SubjectID() {
			continue
		}

		item := EnrichedBid{Bid: bid}
		if job, ok := jobsByID[bid.JobID]; ok {
			jobCopy := job
			item.Job = &jobCopy
		}
		out = append(out, item)
	}
	return out, nil
}

// profileFor resolves profile_<id> with memoization across one listing.
// A nil entry is cached too so a failing lookup is attempted only once.
func (s *ViewsService) profileFor(ctx context.Context, memo map[string]*market.Profile, videographerID string) *market.Profile {
	if p, seen := memo[videographerID]; seen {
		return p
	}

	var result *market.Profile
	rec, err := s.store.Get(ctx, market.ProfileKey(videographerID))
	if err == nil && rec.Kind == market.KindProfile {
		var p market.Profile
		if decErr := rec.Decode(&p); decErr == nil {
			if p.UserID == "" {
				p.UserID = videographerID
			}
			result = &p
		}
	} else if err != nil && err != repository.ErrRecordNotFound {
		s.logf("[Views] profile lookup failed for %s: %v", videographerID, err)
	}

	memo[videographerID] = result
	return result
}

func (s *ViewsService) decodeBids(ctx context.Context) ([]market.Bid, error) {
	recs, err := s.store.ListByKind(ctx, market.KindBid)
	if err != nil {
		return nil, storageErr(err)
	}
	bids := make([]market.Bid, 0, len(recs))
	for _, rec := range recs {
		var b market.Bid
		if err := rec.Decode(&b); err != nil {
			s.logf("[Views] skipping undecodable bid record %s: %v", rec.ID, err)
			continue
		}
		if b.ID == "" {
			b.ID = rec.ID
		}
		bids = append(bids, b)
	}
	return bids, nil
}

func (s *ViewsService) decodeJobs(ctx context.Context) ([]market.Job, error) {
	recs, err := s.store.ListByKind(ctx, market.KindJob)
	if err != nil {
		return nil, storageErr(err)
	}
	jobs := make([]market.Job, 0, len(recs))
	for _, rec := range recs {
		var j market.Job
		if err := rec.Decode(&j); err != nil {
			s.logf("[Views] skipping undecodable job record %s: %v", rec.ID, err)
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (s *ViewsService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
