package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/repository"
)

func customerIdent() market.Identity {
	return market.Identity{UserID: uuid.New(), Role: market.RoleCustomer}
}

func photographerIdent() market.Identity {
	return market.Identity{UserID: uuid.New(), Role: market.RolePhotographer}
}

func f64(v float64) *float64 { return &v }

func validJobInput() CreateJobInput {
	return CreateJobInput{
		Description: "Wedding at the waterfront",
		Services:    []market.ServiceTag{market.ServicePhoto},
		City:        "Helsinki",
		Radius:      25,
		Date:        "2026-09-12",
		Duration:    "4h",
		Difficulty:  market.DifficultyMedium,
		BudgetMin:   f64(300),
		BudgetMax:   f64(800),
	}
}

func newTestJobService(store repository.RecordStore) *JobService {
	s := NewJobService(store, nil, nil, nil, time.Minute)
	s.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestJobCreateRequiresCustomer(t *testing.T) {
	svc := newTestJobService(newFakeStore())

	_, err := svc.Create(context.Background(), photographerIdent(), validJobInput())
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
}

func TestJobCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateJobInput)
		message string
	}{
		{"missing description", func(in *CreateJobInput) { in.Description = "  " }, "description is required"},
		{"no services", func(in *CreateJobInput) { in.Services = nil }, "at least one service must be selected"},
		{"unknown service", func(in *CreateJobInput) { in.Services = []market.ServiceTag{"catering"} }, "unknown service: catering"},
		{"missing city", func(in *CreateJobInput) { in.City = "" }, "city is required"},
		{"zero radius", func(in *CreateJobInput) { in.Radius = 0 }, "radius must be a positive number"},
		{"missing duration", func(in *CreateJobInput) { in.Duration = "" }, "duration is required"},
		{"unknown difficulty", func(in *CreateJobInput) { in.Difficulty = "brutal" }, "unknown difficulty: brutal"},
		{"missing budget", func(in *CreateJobInput) { in.BudgetMax = nil }, "budget range is required unless budget is unknown"},
		{"negative budget", func(in *CreateJobInput) { in.BudgetMin = f64(-5) }, "budget must be a positive number"},
		{"inverted budget", func(in *CreateJobInput) { in.BudgetMin = f64(900) }, "maximum budget must be greater than minimum budget"},
		{"no date or range", func(in *CreateJobInput) { in.Date = ""; in.DateRange = nil }, "a date or date range is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestJobService(newFakeStore())
			in := validJobInput()
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), customerIdent(), in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Message != tc.message {
				t.Fatalf("message = %q, want %q", ve.Message, tc.message)
			}
		})
	}
}

func TestJobCreateDefaultsAndRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := newTestJobService(store)
	ident := customerIdent()

	job, err := svc.Create(context.Background(), ident, validJobInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if job.Status != market.JobOpen {
		t.Errorf("status = %s, want open", job.Status)
	}
	if job.CustomerID != ident.SubjectID() {
		t.Errorf("customerId = %s, want %s", job.CustomerID, ident.SubjectID())
	}
	wantExpiry := svc.now().Add(90 * 24 * time.Hour)
	if !job.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v", job.ExpiresAt, wantExpiry)
	}

	stored := store.job(t, job.ID)
	if stored.Description != job.Description || stored.Status != market.JobOpen {
		t.Errorf("stored job does not match created job: %+v", stored)
	}
}

func TestJobCreateUnknownBudgetClearsRange(t *testing.T) {
	svc := newTestJobService(newFakeStore())

	in := validJobInput()
	in.BudgetUnknown = true
	in.BudgetMin = f64(100)
	in.BudgetMax = f64(200)

	job, err := svc.Create(context.Background(), customerIdent(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.BudgetMin != nil || job.BudgetMax != nil {
		t.Errorf("budget range should be nil when budget is unknown, got min=%v max=%v", job.BudgetMin, job.BudgetMax)
	}
}

func TestJobCreateDropsDetailsForUnselectedServices(t *testing.T) {
	store := newFakeStore()
	svc := newTestJobService(store)

	in := validJobInput()
	in.Services = []market.ServiceTag{market.ServicePhoto}
	in.PhotoDetails = json.RawMessage(`{"style":"documentary"}`)
	in.VideoDetails = json.RawMessage(`{"length":"3min"}`)

	job, err := svc.Create(context.Background(), customerIdent(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if string(job.PhotoDetails) != `{"style":"documentary"}` {
		t.Errorf("photoDetails = %s, want the submitted block", job.PhotoDetails)
	}
	if job.VideoDetails != nil {
		t.Errorf("videoDetails = %s, want nil for an unselected service", job.VideoDetails)
	}

	// The dropped block must serialize as an explicit null.
	rec, err := store.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(rec.Data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(doc["videoDetails"]) != "null" {
		t.Errorf("persisted videoDetails = %s, want null", doc["videoDetails"])
	}
}

func TestJobListExpiryByRole(t *testing.T) {
	store := newFakeStore()
	svc := newTestJobService(store)
	now := svc.now()

	fresh := market.Job{ID: "job-fresh", CustomerID: "c1", Status: market.JobOpen, ExpiresAt: now.Add(time.Hour)}
	stale := market.Job{ID: "job-stale", CustomerID: "c1", Status: market.JobOpen, ExpiresAt: now.Add(-time.Hour)}
	store.mustPut(t, fresh.ID, market.KindJob, fresh)
	store.mustPut(t, stale.ID, market.KindJob, stale)

	asPhotographer, err := svc.List(context.Background(), photographerIdent())
	if err != nil {
		t.Fatalf("list as photographer: %v", err)
	}
	if len(asPhotographer) != 1 || asPhotographer[0].ID != "job-fresh" {
		t.Fatalf("photographer feed = %+v, want only the fresh job", asPhotographer)
	}

	asCustomer, err := svc.List(context.Background(), customerIdent())
	if err != nil {
		t.Fatalf("list as customer: %v", err)
	}
	if len(asCustomer) != 2 {
		t.Fatalf("customer feed has %d jobs, want 2", len(asCustomer))
	}
	for _, job := range asCustomer {
		if job.ID == "job-stale" && job.Status != market.JobExpired {
			t.Errorf("stale job status = %s, want expired", job.Status)
		}
	}

	// Read-time expiry must not touch the record.
	if got := store.job(t, "job-stale"); got.Status != market.JobOpen {
		t.Errorf("persisted status = %s, want open", got.Status)
	}
}

func TestJobListHidesPersistedExpiredFromPhotographers(t *testing.T) {
	store := newFakeStore()
	svc := newTestJobService(store)
	now := svc.now()

	store.mustPut(t, "job-stale", market.KindJob, market.Job{ID: "job-stale", CustomerID: "c1", Status: market.JobOpen, ExpiresAt: now.Add(-time.Hour)})

	// Persist the expiry the way the sweeper does, then list.
	if _, err := svc.ExpireOverdue(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if got := store.job(t, "job-stale"); got.Status != market.JobExpired {
		t.Fatalf("persisted status = %s, want expired", got.Status)
	}

	asPhotographer, err := svc.List(context.Background(), photographerIdent())
	if err != nil {
		t.Fatalf("list as photographer: %v", err)
	}
	for _, job := range asPhotographer {
		if job.ID == "job-stale" {
			t.Fatalf("photographer feed contains persisted-expired job: %+v", job)
		}
	}

	asCustomer, err := svc.List(context.Background(), customerIdent())
	if err != nil {
		t.Fatalf("list as customer: %v", err)
	}
	if len(asCustomer) != 1 || asCustomer[0].Status != market.JobExpired {
		t.Fatalf("customer feed = %+v, want the expired job", asCustomer)
	}
}

func TestJobDelete(t *testing.T) {
	store := newFakeStore()
	svc := newTestJobService(store)
	owner := customerIdent()

	job := market.Job{ID: "job-1", CustomerID: owner.SubjectID(), Status: market.JobOpen}
	store.mustPut(t, job.ID, market.KindJob, job)

	if err := svc.Delete(context.Background(), customerIdent(), "job-1"); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("non-owner delete: got %v, want ErrNotAllowed", err)
	}
	if err := svc.Delete(context.Background(), owner, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing delete: got %v, want ErrNotFound", err)
	}

	store.mustPut(t, "bid-1", market.KindBid, market.Bid{ID: "bid-1", JobID: "job-1"})
	err := svc.Delete(context.Background(), owner, "bid-1")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "record is not a job" {
		t.Fatalf("wrong-kind delete: got %v, want record-is-not-a-job validation", err)
	}

	if err := svc.Delete(context.Background(), owner, "job-1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := store.Get(context.Background(), "job-1"); err != repository.ErrRecordNotFound {
		t.Fatalf("job should be gone, got %v", err)
	}
	// No cascade: the bid survives its job.
	if b := store.bid(t, "bid-1"); b.JobID != "job-1" {
		t.Fatalf("orphan bid changed unexpectedly: %+v", b)
	}
}

func TestExpireOverdueSweep(t *testing.T) {
	store := newFakeStore()
	svc := newTestJobService(store)
	now := svc.now()

	store.mustPut(t, "stale-1", market.KindJob, market.Job{ID: "stale-1", Status: market.JobOpen, ExpiresAt: now.Add(-time.Hour)})
	store.mustPut(t, "stale-2", market.KindJob, market.Job{ID: "stale-2", Status: market.JobOpen, ExpiresAt: now.Add(-2 * time.Hour)})
	store.mustPut(t, "fresh", market.KindJob, market.Job{ID: "fresh", Status: market.JobOpen, ExpiresAt: now.Add(time.Hour)})
	// Accepted jobs past expiry must keep their acceptance.
	store.mustPut(t, "won", market.KindJob, market.Job{ID: "won", Status: market.JobAccepted, ExpiresAt: now.Add(-time.Hour)})

	n, err := svc.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 2 {
		t.Fatalf("expired %d jobs, want 2", n)
	}

	if got := store.job(t, "stale-1"); got.Status != market.JobExpired {
		t.Errorf("stale-1 status = %s, want expired", got.Status)
	}
	if got := store.job(t, "fresh"); got.Status != market.JobOpen {
		t.Errorf("fresh status = %s, want open", got.Status)
	}
	if got := store.job(t, "won"); got.Status != market.JobAccepted {
		t.Errorf("won status = %s, want accepted", got.Status)
	}
}

// fakeCache records list-cache traffic for the caching tests.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	dels int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	f.dels++
	return nil
}

func TestJobListUsesCacheAndCreateInvalidates(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	svc := NewJobService(store, cache, nil, nil, time.Minute)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	ident := customerIdent()

	store.mustPut(t, "job-1", market.KindJob, market.Job{ID: "job-1", Status: market.JobOpen, ExpiresAt: svc.now().Add(time.Hour)})

	if _, err := svc.List(context.Background(), ident); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if _, ok := cache.data[jobsListCacheKey]; !ok {
		t.Fatal("list did not populate the cache")
	}

	// A second list must be served from cache even if the store breaks.
	store.failList = errors.New("store down")
	jobs, err := svc.List(context.Background(), ident)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("cached list: jobs=%v err=%v", jobs, err)
	}
	store.failList = nil

	if _, err := svc.Create(context.Background(), ident, validJobInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := cache.data[jobsListCacheKey]; ok {
		t.Fatal("create did not invalidate the list cache")
	}
}
