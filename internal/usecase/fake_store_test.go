package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shutterbid/internal/domain/market"
	"shutterbid/internal/repository"
)

// fakeStore is an in-memory RecordStore with injectable failures.
type fakeStore struct {
	mu   sync.Mutex
	recs map[string]repository.Record

	failPut    error
	failList   error
	failGet    map[string]error
	failUpdate map[string]error
	failCAS    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recs:       map[string]repository.Record{},
		failGet:    map[string]error{},
		failUpdate: map[string]error{},
	}
}

func (f *fakeStore) Put(ctx context.Context, rec repository.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return f.failPut
	}
	f.recs[rec.ID] = rec
	return nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (repository.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failGet[id]; err != nil {
		return repository.Record{}, err
	}
	rec, ok := f.recs[id]
	if !ok {
		return repository.Record{}, repository.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeStore) ListByKind(ctx context.Context, kind market.Kind) ([]repository.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	out := make([]repository.Record, 0)
	for _, rec := range f.recs {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, rec repository.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failUpdate[rec.ID]; err != nil {
		return err
	}
	existing, ok := f.recs[rec.ID]
	if !ok || existing.Kind != rec.Kind {
		return repository.ErrRecordNotFound
	}
	f.recs[rec.ID] = rec
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recs[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(f.recs, id)
	return nil
}

func (f *fakeStore) CompareAndSwapStatus(ctx context.Context, id string, kind market.Kind, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCAS != nil {
		return false, f.failCAS
	}
	rec, ok := f.recs[id]
	if !ok || rec.Kind != kind {
		return false, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Data, &doc); err != nil {
		return false, fmt.Errorf("corrupt record %s: %w", id, err)
	}
	if doc["status"] != from {
		return false, nil
	}
	doc["status"] = to
	data, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	rec.Data = data
	f.recs[id] = rec
	return true, nil
}

func (f *fakeStore) mustPut(t interface{ Fatalf(string, ...any) }, id string, kind market.Kind, v any) {
	rec, err := repository.NewRecord(id, kind, v)
	if err != nil {
		t.Fatalf("marshal %s: %v", id, err)
	}
	if err := f.Put(context.Background(), rec); err != nil {
		t.Fatalf("put %s: %v", id, err)
	}
}

func (f *fakeStore) bid(t interface{ Fatalf(string, ...any) }, id string) market.Bid {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		t.Fatalf("bid %s not in store", id)
	}
	var b market.Bid
	if err := rec.Decode(&b); err != nil {
		t.Fatalf("decode bid %s: %v", id, err)
	}
	return b
}

func (f *fakeStore) job(t interface{ Fatalf(string, ...any) }, id string) market.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		t.Fatalf("job %s not in store", id)
	}
	var j market.Job
	if err := rec.Decode(&j); err != nil {
		t.Fatalf("decode job %s: %v", id, err)
	}
	return j
}
