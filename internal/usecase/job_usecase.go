package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/metrics"
	"shutterbid/internal/repository"

	"github.com/google/uuid"
)

// Jobs default to a 90 day lifetime when the customer does not pick an
// expiry.
const defaultJobLifetime = 90 * 24 * time.Hour

type CreateJobInput struct {
	Description  string
	Services     []market.ServiceTag
	City         string
	Area         string
	ExactAddress string
	Radius       int
	Date         string
	DateRange    *market.DateRange
	Duration     string
	Difficulty   market.Difficulty

	BudgetMin     *float64
	BudgetMax     *float64
	BudgetUnknown bool

	ExpiresAt *time.Time

	PhotoDetails      json.RawMessage
	VideoDetails      json.RawMessage
	DroneDetails      json.RawMessage
	ShortVideoDetails json.RawMessage
	EditingDetails    json.RawMessage
}

type JobUsecase interface {
	Create(ctx context.Context, ident market.Identity, in CreateJobInput) (market.Job, error)
	List(ctx context.Context, ident market.Identity) ([]market.Job, error)
	Delete(ctx context.Context, ident market.Identity, jobID string) error
	ExpireOverdue(ctx context.Context) (int, error)
}

type JobService struct {
	store    repository.RecordStore
	cache    JobCache
	metrics  *metrics.Collector
	logger   *log.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

func NewJobService(store repository.RecordStore, cache JobCache, collector *metrics.Collector, logger *log.Logger, cacheTTL time.Duration) *JobService {
	return &JobService{
		store:    store,
		cache:    cache,
		metrics:  collector,
		logger:   logger,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *JobService) Create(ctx context.Context, ident market.Identity, in CreateJobInput) (market.Job, error) {
	if ident.Role != market.RoleCustomer {
		return market.Job{}, ErrNotAllowed
	}

	if err := validateJobInput(in); err != nil {
		return market.Job{}, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(defaultJobLifetime)
	if in.ExpiresAt != nil && !in.ExpiresAt.IsZero() {
		expiresAt = in.ExpiresAt.UTC()
	}

	job := market.Job{
		ID:           uuid.NewString(),
		CustomerID:   ident.SubjectID(),
		Services:     in.Services,
		City:         strings.TrimSpace(in.City),
		Area:         strings.TrimSpace(in.Area),
		ExactAddress: strings.TrimSpace(in.ExactAddress),
		Radius:       in.Radius,
		Date:         strings.TrimSpace(in.Date),
		DateRange:    in.DateRange,
		Duration:     strings.TrimSpace(in.Duration),
		Difficulty:   in.Difficulty,
		Description:  strings.TrimSpace(in.Description),

		BudgetMin:     in.BudgetMin,
		BudgetMax:     in.BudgetMax,
		BudgetUnknown: in.BudgetUnknown,

		Status:    market.JobOpen,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if job.BudgetUnknown {
		job.BudgetMin = nil
		job.BudgetMax = nil
	}

	// Each detail block is kept only when its owning service was
	// selected; everything else is stored as an explicit null so readers
	// can tell "not applicable" from "not filled in".
	if job.HasService(market.ServicePhoto) {
		job.PhotoDetails = in.PhotoDetails
	}
	if job.HasService(market.ServiceVideo) {
		job.VideoDetails = in.VideoDetails
	}
	if job.HasService(market.ServiceDrone) {
		job.DroneDetails = in.DroneDetails
	}
	if job.HasService(market.ServiceShortVideo) {
		job.ShortVideoDetails = in.ShortVideoDetails
	}
	if job.HasService(market.ServiceEditing) {
		job.EditingDetails = in.EditingDetails
	}

	rec, err := repository.NewRecord(job.ID, market.KindJob, job)
	if err != nil {
		return market.Job{}, storageErr(err)
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return market.Job{}, storageErr(err)
	}

	s.invalidateListCache(ctx)
	s.metrics.RecordJobCreated()

	return job, nil
}

func validateJobInput(in CreateJobInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return validationf("description is required")
	}
	if len(in.Services) == 0 {
		return validationf("at least one service must be selected")
	}
	for _, tag := range in.Services {
		if !market.ValidServiceTag(tag) {
			return validationf("unknown service: %s", tag)
		}
	}
	if strings.TrimSpace(in.City) == "" {
		return validationf("city is required")
	}
	if in.Radius <= 0 {
		return validationf("radius must be a positive number")
	}
	if strings.TrimSpace(in.Duration) == "" {
		return validationf("duration is required")
	}
	if in.Difficulty == "" {
		return validationf("difficulty is required")
	}
	if !market.ValidDifficulty(in.Difficulty) {
		return validationf("unknown difficulty: %s", in.Difficulty)
	}

	if !in.BudgetUnknown {
		if in.BudgetMin == nil || in.BudgetMax == nil {
			return validationf("budget range is required unless budget is unknown")
		}
		if *in.BudgetMin <= 0 || *in.BudgetMax <= 0 {
			return validationf("budget must be a positive number")
		}
		if *in.BudgetMin >= *in.BudgetMax {
			return validationf("maximum budget must be greater than minimum budget")
		}
	}

	hasDate := strings.TrimSpace(in.Date) != ""
	hasRange := in.DateRange != nil && strings.TrimSpace(in.DateRange.Start) != "" && strings.TrimSpace(in.DateRange.End) != ""
	if !hasDate && !hasRange {
		return validationf("a date or date range is required")
	}

	return nil
}

// List returns the job feed for the caller's role. Customers see their
// expired jobs with status "expired"; photographers never see them at
// all, whether expiry is still a read-time view or the sweeper already
// persisted it.
func (s *JobService) List(ctx context.Context, ident market.Identity) ([]market.Job, error) {
	if !market.ValidRole(ident.Role) {
		return nil, ErrNotAllowed
	}

	jobs, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]market.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status == market.JobExpired || job.Overdue(now) {
			if ident.Role == market.RolePhotographer {
				continue
			}
			job.Status = market.JobExpired
		}
		out = append(out, job)
	}
	return out, nil
}

func (s *JobService) Delete(ctx context.Context, ident market.Identity, jobID string) error {
	if ident.Role != market.RoleCustomer {
		return ErrNotAllowed
	}

	rec, err := s.store.Get(ctx, jobID)
	if err != nil {
		if err == repository.ErrRecordNotFound {
			return ErrNotFound
		}
		return storageErr(err)
	}
	if rec.Kind != market.KindJob {
		return validationf("record is not a job")
	}

	var job market.Job
	if err := rec.Decode(&job); err != nil {
		return storageErr(err)
	}
	if job.CustomerID != ident.SubjectID() {
		return ErrNotAllowed
	}

	// Hard delete, no bid cascade: orphaned bids stay queryable but
	// unreachable through the job.
	if err := s.store.Delete(ctx, jobID); err != nil {
		if err == repository.ErrRecordNotFound {
			return ErrNotFound
		}
		return storageErr(err)
	}

	s.invalidateListCache(ctx)
	return nil
}

// ExpireOverdue persists open -> expired for every job past its expiry.
// The conditional write means a job accepted between the scan and the
// sweep keeps its acceptance.
func (s *JobService) ExpireOverdue(ctx context.Context) (int, error) {
	recs, err := s.store.ListByKind(ctx, market.KindJob)
	if err != nil {
		return 0, storageErr(err)
	}

	now := s.now()
	expired := 0
	for _, rec := range recs {
		var job market.Job
		if err := rec.Decode(&job); err != nil {
			s.logf("[Jobs] skipping undecodable job record %s: %v", rec.ID, err)
			continue
		}
		if !job.Overdue(now) {
			continue
		}
		swapped, err := s.store.CompareAndSwapStatus(ctx, job.ID, market.KindJob, string(market.JobOpen), string(market.JobExpired))
		if err != nil {
			return expired, storageErr(err)
		}
		if swapped {
			expired++
		}
	}

	if expired > 0 {
		s.invalidateListCache(ctx)
		s.metrics.RecordJobsExpired(expired)
	}
	return expired, nil
}

func (s *JobService) fetchAll(ctx context.Context) ([]market.Job, error) {
	if s.cache != nil {
		var cached []market.Job
		hit, err := s.cache.GetJSON(ctx, jobsListCacheKey, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	recs, err := s.store.ListByKind(ctx, market.KindJob)
	if err != nil {
		return nil, storageErr(err)
	}

	jobs := make([]market.Job, 0, len(recs))
	for _, rec := range recs {
		var job market.Job
		if err := rec.Decode(&job); err != nil {
			s.logf("[Jobs] skipping undecodable job record %s: %v", rec.ID, err)
			continue
		}
		jobs = append(jobs, job)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, jobsListCacheKey, jobs, s.cacheTTL); err != nil {
			s.logf("[Jobs] cache set failed: %v", err)
		}
	}
	return jobs, nil
}

func (s *JobService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, jobsListCacheKey); err != nil {
		s.logf("[Jobs] cache invalidation failed: %v", err)
	}
}

func (s *JobService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
