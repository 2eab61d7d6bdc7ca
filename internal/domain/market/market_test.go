package market

import (
	"testing"
	"time"
)

func TestJobOverdue(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		job  Job
		want bool
	}{
		{"open past expiry", Job{Status: JobOpen, ExpiresAt: now.Add(-time.Minute)}, true},
		{"open before expiry", Job{Status: JobOpen, ExpiresAt: now.Add(time.Minute)}, false},
		// Acceptance freezes the job: expiry no longer applies.
		{"accepted past expiry", Job{Status: JobAccepted, ExpiresAt: now.Add(-time.Minute)}, false},
		{"already expired", Job{Status: JobExpired, ExpiresAt: now.Add(-time.Minute)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.job.Overdue(now); got != tc.want {
				t.Fatalf("Overdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBidMatches(t *testing.T) {
	b := Bid{ID: "new-id", LegacyBidID: "old-id"}
	if !b.Matches("new-id") || !b.Matches("old-id") {
		t.Error("bid must match both its id and the legacy id")
	}
	if b.Matches("other") {
		t.Error("bid must not match an unrelated id")
	}

	// An empty legacy id must never match an empty probe.
	plain := Bid{ID: "new-id"}
	if plain.Matches("") {
		t.Error("empty probe matched a bid without a legacy id")
	}
}

func TestJobHasService(t *testing.T) {
	j := Job{Services: []ServiceTag{ServicePhoto, ServiceDrone}}
	if !j.HasService(ServiceDrone) {
		t.Error("drone service should be present")
	}
	if j.HasService(ServiceEditing) {
		t.Error("editing service should be absent")
	}
}
